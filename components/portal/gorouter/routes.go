package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/components/portal/commands"
	"github.com/dentalexperts/go-portal/components/portal/httpapi"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

// SessionResolver converts a router.Context into a portal.Session.
type SessionResolver func(router.Context) portal.Session

// Config wires go-router with the portal service and command API.
type Config[T any] struct {
	Router          router.Router[T]
	Service         *portal.Service
	API             httpapi.Executor
	SessionResolver SessionResolver
	BasePath        string
	Routes          RouteConfig
}

// RouteConfig customizes the relative paths used for portal endpoints.
type RouteConfig struct {
	Login             string
	Logout            string
	Signup            string
	Contact           string
	Appointments      string
	AppointmentUpdate string
	MyAppointments    string
	Profile           string
	Doctors           string
	DoctorID          string
	Ratings           string
	RatingID          string
	Reports           string
	ReportID          string
	MyReports         string
	Dashboard         string
	AdminTab          string
	Credentials       string
}

// Register mounts portal routes (HTML fragments, JSON, REST) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/portal"
	}
	resolver := cfg.SessionResolver
	if resolver == nil {
		resolver = defaultSessionResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Ratings, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		markup, err := cfg.Service.RenderRatings(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, markup)
	}))

	group.Get(routes.MyAppointments, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		markup, err := cfg.Service.RenderMyAppointments(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, markup)
	}))

	group.Get(routes.Doctors, router.WrapHandler(func(ctx router.Context) error {
		doctors, err := cfg.Service.LoadDoctors(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, doctors)
	}))

	group.Get(routes.Profile, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		profile, err := cfg.Service.LoadProfile(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, profile)
	}))

	group.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		dashboard, err := cfg.Service.LoadAdminDashboard(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, dashboard)
	}))

	group.Get(routes.AdminTab, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		view, err := cfg.Service.AdminTabSwitch(ctx.Context(), ctx.Param("tab"))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		if view == nil {
			return ctx.JSON(http.StatusOK, map[string]string{"status": "unchanged"})
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	group.Get(routes.MyReports, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		markup, err := cfg.Service.RenderUserReports(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, markup)
	}))

	group.Get(routes.ReportID, router.WrapHandler(func(ctx router.Context) error {
		if err := hydrateSession(ctx, cfg.Service, resolver); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("report id is required"))
		}
		content, err := cfg.Service.DownloadReport(ctx.Context(), id)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "application/octet-stream")
		return ctx.Send(content)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver SessionResolver, routes RouteConfig) {
	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.LoginRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Login(ctx.Context(), commands.LoginInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	r.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Logout(ctx.Context()); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	r.Post(routes.Signup, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.SignupRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Signup(ctx.Context(), commands.SignupInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.Appointments, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.AppointmentRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Book(ctx.Context(), commands.BookAppointmentInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.AppointmentUpdate, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.UpdateAppointmentRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.UpdateAppointment(ctx.Context(), commands.UpdateAppointmentInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Contact, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.ContactRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Contact(ctx.Context(), commands.SendContactInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "sent"})
	}))

	r.Put(routes.Profile, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateProfileInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.UpdateProfile(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Ratings, router.WrapHandler(func(ctx router.Context) error {
		var payload portal.SubmitRatingInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SubmitRating(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.RatingID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("rating id is required"))
		}
		var payload commands.UpdateRatingInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.RatingID = id
		if err := api.UpdateRating(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.RatingID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("rating id is required"))
		}
		if err := api.DeleteRating(ctx.Context(), commands.DeleteRatingInput{RatingID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Doctors, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.ManageDoctorRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.ManageDoctor(ctx.Context(), commands.ManageDoctorInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.DoctorID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("doctor id is required"))
		}
		if err := api.DeleteDoctor(ctx.Context(), commands.DeleteDoctorInput{ID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reports, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.ManageReportRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.ManageReport(ctx.Context(), commands.ManageReportInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.ReportID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("report id is required"))
		}
		if err := api.DeleteReport(ctx.Context(), commands.DeleteReportInput{ID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Put(routes.Credentials, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.AdminCredentialsRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.UpdateCredentials(ctx.Context(), commands.UpdateCredentialsInput{Request: payload}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))
}

// hydrateSession seeds the session store from router locals so middleware
// driven identity survives across transports. A failed persist surfaces as
// an error: rendering with a stale identity would leak wrong edit actions.
func hydrateSession(ctx router.Context, service *portal.Service, resolver SessionResolver) error {
	session := resolver(ctx)
	if session.Role == portal.RoleGuest {
		return nil
	}
	return service.Sessions().Set(ctx.Context(), session)
}

func defaultSessionResolver(ctx router.Context) portal.Session {
	session := portal.GuestSession()
	role, _ := ctx.Locals("role").(string)
	switch role {
	case "admin":
		session.Role = portal.RoleAdmin
		if name, ok := ctx.Locals("admin_username").(string); ok && name != "" {
			session.AdminUsername = name
			session.Name = name
		}
	case "user":
		session.Role = portal.RoleUser
		if name, ok := ctx.Locals("user_name").(string); ok && name != "" {
			session.Name = name
		}
		if email, ok := ctx.Locals("user_email").(string); ok {
			session.Email = email
		}
		if id, ok := ctx.Locals("user_id").(string); ok {
			session.UserID = id
		}
	}
	return session
}

func sendHTML(ctx router.Context, markup string) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(markup))
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Login == "" {
		routes.Login = "/login"
	}
	if routes.Logout == "" {
		routes.Logout = "/logout"
	}
	if routes.Signup == "" {
		routes.Signup = "/signup"
	}
	if routes.Contact == "" {
		routes.Contact = "/contact"
	}
	if routes.Appointments == "" {
		routes.Appointments = "/appointments"
	}
	if routes.AppointmentUpdate == "" {
		routes.AppointmentUpdate = "/appointments/update"
	}
	if routes.MyAppointments == "" {
		routes.MyAppointments = "/appointments/mine"
	}
	if routes.Profile == "" {
		routes.Profile = "/profile"
	}
	if routes.Doctors == "" {
		routes.Doctors = "/doctors"
	}
	if routes.DoctorID == "" {
		routes.DoctorID = "/doctors/:id"
	}
	if routes.Ratings == "" {
		routes.Ratings = "/ratings"
	}
	if routes.RatingID == "" {
		routes.RatingID = "/ratings/:id"
	}
	if routes.Reports == "" {
		routes.Reports = "/reports"
	}
	if routes.ReportID == "" {
		routes.ReportID = "/reports/:id"
	}
	if routes.MyReports == "" {
		routes.MyReports = "/reports/mine"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/admin/dashboard"
	}
	if routes.AdminTab == "" {
		routes.AdminTab = "/admin/tabs/:tab"
	}
	if routes.Credentials == "" {
		routes.Credentials = "/admin/credentials"
	}
	return routes
}
