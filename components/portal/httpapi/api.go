package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/components/portal/commands"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

// Executor is the command surface transports depend on. A router adapter
// calls these instead of holding the typed commanders directly.
type Executor interface {
	Login(ctx context.Context, msg commands.LoginInput) error
	Logout(ctx context.Context) error
	Signup(ctx context.Context, msg commands.SignupInput) error
	Book(ctx context.Context, msg commands.BookAppointmentInput) error
	Contact(ctx context.Context, msg commands.SendContactInput) error
	UpdateProfile(ctx context.Context, msg commands.UpdateProfileInput) error
	SubmitRating(ctx context.Context, msg portal.SubmitRatingInput) error
	UpdateRating(ctx context.Context, msg commands.UpdateRatingInput) error
	DeleteRating(ctx context.Context, msg commands.DeleteRatingInput) error
	ManageDoctor(ctx context.Context, msg commands.ManageDoctorInput) error
	DeleteDoctor(ctx context.Context, msg commands.DeleteDoctorInput) error
	ManageReport(ctx context.Context, msg commands.ManageReportInput) error
	DeleteReport(ctx context.Context, msg commands.DeleteReportInput) error
	UpdateAppointment(ctx context.Context, msg commands.UpdateAppointmentInput) error
	UpdateCredentials(ctx context.Context, msg commands.UpdateCredentialsInput) error
}

// CommandExecutor implements Executor by delegating to shared commanders.
type CommandExecutor struct {
	LoginCommander             gocommand.Commander[commands.LoginInput]
	LogoutCommander            gocommand.Commander[commands.LogoutInput]
	SignupCommander            gocommand.Commander[commands.SignupInput]
	BookCommander              gocommand.Commander[commands.BookAppointmentInput]
	ContactCommander           gocommand.Commander[commands.SendContactInput]
	ProfileCommander           gocommand.Commander[commands.UpdateProfileInput]
	SubmitRatingCommander      gocommand.Commander[portal.SubmitRatingInput]
	UpdateRatingCommander      gocommand.Commander[commands.UpdateRatingInput]
	DeleteRatingCommander      gocommand.Commander[commands.DeleteRatingInput]
	ManageDoctorCommander      gocommand.Commander[commands.ManageDoctorInput]
	DeleteDoctorCommander      gocommand.Commander[commands.DeleteDoctorInput]
	ManageReportCommander      gocommand.Commander[commands.ManageReportInput]
	DeleteReportCommander      gocommand.Commander[commands.DeleteReportInput]
	UpdateAppointmentCommander gocommand.Commander[commands.UpdateAppointmentInput]
	UpdateCredentialsCommander gocommand.Commander[commands.UpdateCredentialsInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Login(ctx context.Context, msg commands.LoginInput) error {
	return e.LoginCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Logout(ctx context.Context) error {
	return e.LogoutCommander.Execute(ctx, commands.LogoutInput{})
}

func (e *CommandExecutor) Signup(ctx context.Context, msg commands.SignupInput) error {
	return e.SignupCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Book(ctx context.Context, msg commands.BookAppointmentInput) error {
	return e.BookCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Contact(ctx context.Context, msg commands.SendContactInput) error {
	return e.ContactCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) UpdateProfile(ctx context.Context, msg commands.UpdateProfileInput) error {
	return e.ProfileCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) SubmitRating(ctx context.Context, msg portal.SubmitRatingInput) error {
	return e.SubmitRatingCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) UpdateRating(ctx context.Context, msg commands.UpdateRatingInput) error {
	return e.UpdateRatingCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) DeleteRating(ctx context.Context, msg commands.DeleteRatingInput) error {
	return e.DeleteRatingCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) ManageDoctor(ctx context.Context, msg commands.ManageDoctorInput) error {
	return e.ManageDoctorCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) DeleteDoctor(ctx context.Context, msg commands.DeleteDoctorInput) error {
	return e.DeleteDoctorCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) ManageReport(ctx context.Context, msg commands.ManageReportInput) error {
	return e.ManageReportCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) DeleteReport(ctx context.Context, msg commands.DeleteReportInput) error {
	return e.DeleteReportCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) UpdateAppointment(ctx context.Context, msg commands.UpdateAppointmentInput) error {
	return e.UpdateAppointmentCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) UpdateCredentials(ctx context.Context, msg commands.UpdateCredentialsInput) error {
	return e.UpdateCredentialsCommander.Execute(ctx, msg)
}

// Handlers exposes plain net/http endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Login(r.Context(), commands.LoginInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Logout(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Signup(r.Context(), commands.SignupInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleBookAppointment(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Book(r.Context(), commands.BookAppointmentInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Contact(r.Context(), commands.SendContactInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateProfile(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var payload portal.SubmitRatingInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.SubmitRating(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateRating(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateRatingInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateRating(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteRating(w http.ResponseWriter, r *http.Request, ratingID string) {
	id, err := strconv.Atoi(ratingID)
	if err != nil {
		http.Error(w, "invalid rating id", http.StatusBadRequest)
		return
	}
	if err := h.API.DeleteRating(r.Context(), commands.DeleteRatingInput{RatingID: id}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleManageDoctor(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.ManageDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.ManageDoctor(r.Context(), commands.ManageDoctorInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleDeleteDoctor(w http.ResponseWriter, r *http.Request, doctorID string) {
	id, err := strconv.Atoi(doctorID)
	if err != nil {
		http.Error(w, "invalid doctor id", http.StatusBadRequest)
		return
	}
	if err := h.API.DeleteDoctor(r.Context(), commands.DeleteDoctorInput{ID: id}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleManageReport(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.ManageReportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.ManageReport(r.Context(), commands.ManageReportInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleDeleteReport(w http.ResponseWriter, r *http.Request, reportID string) {
	id, err := strconv.Atoi(reportID)
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}
	if err := h.API.DeleteReport(r.Context(), commands.DeleteReportInput{ID: id}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateAppointment(r.Context(), commands.UpdateAppointmentInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleUpdateCredentials(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.AdminCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.UpdateCredentials(r.Context(), commands.UpdateCredentialsInput{Request: payload}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
