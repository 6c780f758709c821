package portal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

func profileRecordKey(email string) string {
	return "profile:" + NormalizeEmail(email)
}

// LoadProfile fetches the signed-in user's profile.
func (s *Service) LoadProfile(ctx context.Context) (apiclient.ProfileData, error) {
	client, err := s.client()
	if err != nil {
		return apiclient.ProfileData{}, err
	}
	session, err := s.userSession(ctx)
	if err != nil {
		return apiclient.ProfileData{}, err
	}
	resp, err := client.UserProfile(ctx, session.Email)
	if err != nil {
		s.opts.Status.Post(TargetProfileMessage, StatusError, "Error: "+err.Error())
		return apiclient.ProfileData{}, err
	}
	if !resp.OK() {
		s.opts.Status.Post(TargetProfileMessage, StatusError, resp.Message)
		return apiclient.ProfileData{}, fmt.Errorf("portal: profile load refused: %s", resp.Message)
	}
	return resp.User, nil
}

// BeginProfileEdit loads the profile and opens an edit session seeded
// with its current values.
func (s *Service) BeginProfileEdit(ctx context.Context) (EditSession, error) {
	session, err := s.userSession(ctx)
	if err != nil {
		return EditSession{}, err
	}
	profile, err := s.LoadProfile(ctx)
	if err != nil {
		return EditSession{}, err
	}
	fields := map[string]string{
		"name":        profile.Name,
		"age":         formatAge(profile.Age),
		"blood_group": profile.BloodGroup,
		"gender":      profile.Gender,
	}
	return s.opts.Editor.Begin(ctx, profileRecordKey(session.Email), fields)
}

// SetProfileField stages one edited field.
func (s *Service) SetProfileField(ctx context.Context, field, value string) error {
	session, err := s.userSession(ctx)
	if err != nil {
		return err
	}
	return s.opts.Editor.SetField(profileRecordKey(session.Email), field, value)
}

// StageProfilePhoto stages a replacement photo for preview; it is not
// uploaded until SaveProfile commits.
func (s *Service) StageProfilePhoto(ctx context.Context, upload apiclient.FileUpload) error {
	session, err := s.userSession(ctx)
	if err != nil {
		return err
	}
	return s.opts.Editor.StageImage(profileRecordKey(session.Email), upload)
}

// CancelProfileEdit restores the pre-edit values without any network call.
func (s *Service) CancelProfileEdit(ctx context.Context) (map[string]string, error) {
	session, err := s.userSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.opts.Editor.Cancel(ctx, profileRecordKey(session.Email))
}

// SaveProfile commits the active edit session. The staged values show
// optimistically; success also syncs the session name and the greeting,
// failure restores the originals per the editor's rollback policy.
func (s *Service) SaveProfile(ctx context.Context) (SaveResult, error) {
	client, err := s.client()
	if err != nil {
		return SaveResult{}, err
	}
	session, err := s.userSession(ctx)
	if err != nil {
		return SaveResult{}, err
	}

	result, err := s.opts.Editor.Save(ctx, profileRecordKey(session.Email), func(ctx context.Context, values map[string]string, image *apiclient.FileUpload) (apiclient.Envelope, error) {
		resp, err := client.UpdateProfile(ctx, apiclient.UpdateProfileRequest{
			Email:      session.Email,
			Name:       values["name"],
			Age:        values["age"],
			BloodGroup: values["blood_group"],
			Gender:     values["gender"],
			ProfilePic: image,
		})
		return resp.Envelope, err
	})
	if reportErr := s.reportOutcome(TargetProfileMessage, result.Envelope, err); reportErr != nil {
		return result, reportErr
	}

	if result.Envelope.OK() {
		if name := result.Values["name"]; name != "" && name != session.Name {
			s.mu.Lock()
			setErr := s.opts.Sessions.SetName(ctx, name)
			s.mu.Unlock()
			if setErr != nil {
				return result, setErr
			}
			s.opts.Views.RefreshGreeting(ctx)
		}
		s.recordTelemetry(ctx, "portal.profile.save", nil)
	}
	return result, nil
}

// RenderMyAppointments renders the signed-in user's appointment cards.
func (s *Service) RenderMyAppointments(ctx context.Context) (string, error) {
	client, err := s.client()
	if err != nil {
		return "", err
	}
	tables, err := s.tables()
	if err != nil {
		return "", err
	}
	session, err := s.userSession(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.MyAppointments(ctx, session.Email)
	if err != nil {
		return "", err
	}
	records := make([]Record, len(resp.Appointments))
	for i, appt := range resp.Appointments {
		status, color := AppointmentStatusColor(appt.Status)
		records[i] = Record{
			"doctor":       appt.Doctor,
			"date":         appt.AppointmentDate,
			"status":       status,
			"status_color": color.CSS(),
		}
	}
	return tables.RenderNamed(records, "cards/appointment", EmptyState{
		Message: "No appointments found.",
		Block:   true,
	})
}

// LoadDoctors fetches the public doctor list for dropdowns.
func (s *Service) LoadDoctors(ctx context.Context) ([]apiclient.Doctor, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	resp, err := client.GetDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}
