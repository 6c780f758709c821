package portal

import (
	"context"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

// AdminDashboard is everything the admin landing view needs: headline
// stats, rendered table fragments and chart markup.
type AdminDashboard struct {
	Stats             apiclient.DashboardStats
	UsersHTML         string
	AppointmentsHTML  string
	DoctorsHTML       string
	OverviewChart     string
	StatusChart       string
	SpecializationPie string
}

// AdminReportsView is the payload rendered when the reports tab activates.
type AdminReportsView struct {
	ReportsHTML string
	Users       []apiclient.UserRecord
	Doctors     []apiclient.Doctor
}

// LoadAdminDashboard fetches the aggregate payload and renders every
// admin table plus the stats charts.
func (s *Service) LoadAdminDashboard(ctx context.Context) (AdminDashboard, error) {
	client, err := s.client()
	if err != nil {
		return AdminDashboard{}, err
	}
	tables, err := s.tables()
	if err != nil {
		return AdminDashboard{}, err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return AdminDashboard{}, err
	}

	resp, err := client.AdminDashboardData(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	dashboard := AdminDashboard{Stats: resp.Stats}

	userRecords := make([]Record, len(resp.Users))
	for i, user := range resp.Users {
		userRecords[i] = Record{
			"name":       user.Name,
			"email":      user.Email,
			"age":        formatAge(user.Age),
			"gender":     user.Gender,
			"blood_type": user.BloodType,
		}
	}
	if dashboard.UsersHTML, err = tables.RenderNamed(userRecords, "rows/user", EmptyState{
		Message: "No users found.", Colspan: 5,
	}); err != nil {
		return AdminDashboard{}, err
	}

	apptRecords := make([]Record, len(resp.Appointments))
	for i, appt := range resp.Appointments {
		status, color := AppointmentStatusColor(appt.Status)
		apptRecords[i] = Record{
			"id":           appt.ID,
			"name":         appt.Name,
			"doctor":       appt.Doctor,
			"date":         appt.AppointmentDate,
			"phone":        appt.Phone,
			"status":       status,
			"status_color": color.CSS(),
		}
	}
	if dashboard.AppointmentsHTML, err = tables.RenderNamed(apptRecords, "rows/appointment", EmptyState{
		Message: "No appointments found.", Colspan: 5,
	}); err != nil {
		return AdminDashboard{}, err
	}

	doctorRecords := make([]Record, len(resp.Doctors))
	for i, doctor := range resp.Doctors {
		doctorRecords[i] = Record{
			"id":             doctor.ID,
			"name":           doctor.Name,
			"specialization": doctor.Specialization,
		}
	}
	if dashboard.DoctorsHTML, err = tables.RenderNamed(doctorRecords, "rows/doctor", EmptyState{
		Message: "No doctors found.", Colspan: 3,
	}); err != nil {
		return AdminDashboard{}, err
	}

	if dashboard.OverviewChart, err = s.opts.Charts.Overview(resp.Stats); err != nil {
		return AdminDashboard{}, err
	}
	if dashboard.StatusChart, err = s.opts.Charts.StatusBreakdown(resp.Appointments); err != nil {
		return AdminDashboard{}, err
	}
	if dashboard.SpecializationPie, err = s.opts.Charts.SpecializationPie(resp.Doctors); err != nil {
		return AdminDashboard{}, err
	}

	s.recordTelemetry(ctx, "portal.admin.dashboard", map[string]any{
		"users":        resp.Stats.Users,
		"appointments": resp.Stats.Appointments,
		"doctors":      resp.Stats.Doctors,
	})
	return dashboard, nil
}

// AdminTabSwitch runs the side effects of activating an admin tab. The
// reports tab reloads the report table and the form dropdowns; every
// other tab only switches panels and returns nil.
func (s *Service) AdminTabSwitch(ctx context.Context, tab string) (*AdminReportsView, error) {
	if _, err := s.adminSession(ctx); err != nil {
		return nil, err
	}
	if tab != "reports" {
		return nil, nil
	}

	html, err := s.RenderAdminReports(ctx)
	if err != nil {
		return nil, err
	}
	users, doctors, err := s.ReportDropdowns(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminReportsView{ReportsHTML: html, Users: users, Doctors: doctors}, nil
}

// UpdateAppointment edits one appointment row from the admin table.
func (s *Service) UpdateAppointment(ctx context.Context, req apiclient.UpdateAppointmentRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return err
	}

	s.opts.Status.Post(TargetAppointmentEdit, StatusInfo, "Submitting...")
	env, err := client.UpdateAppointment(ctx, req)
	return s.reportOutcome(TargetAppointmentEdit, env, err)
}

// LoadAllDoctors fetches the full doctor list for the admin tables.
func (s *Service) LoadAllDoctors(ctx context.Context) ([]apiclient.Doctor, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return nil, err
	}
	resp, err := client.GetAllDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

// ManageDoctor creates a practitioner, image included.
func (s *Service) ManageDoctor(ctx context.Context, req apiclient.ManageDoctorRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return err
	}
	if req.Name == "" || req.Specialization == "" {
		s.opts.Status.Post(TargetDoctorMessage, StatusError, "All fields are required")
		return nil
	}

	s.opts.Status.Post(TargetDoctorMessage, StatusInfo, "Submitting...")
	env, err := client.ManageDoctor(ctx, req)
	return s.reportOutcome(TargetDoctorMessage, env, err)
}

// DeleteDoctor removes a practitioner by id.
func (s *Service) DeleteDoctor(ctx context.Context, id int) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return err
	}
	env, err := client.DeleteDoctor(ctx, id)
	if err == nil && !env.OK() && env.Message == "" {
		env.Message = "Failed to delete"
	}
	return s.reportOutcome(TargetDoctorMessage, env, err)
}

// UpdateAdminCredentials rotates the admin login. Success forces a
// logout so the new credentials take effect immediately.
func (s *Service) UpdateAdminCredentials(ctx context.Context, req apiclient.AdminCredentialsRequest) (ViewMode, error) {
	client, err := s.client()
	if err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	session, err := s.adminSession(ctx)
	if err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	if req.CurrentUsername == "" {
		req.CurrentUsername = session.AdminUsername
	}
	if req.Username == "" || req.Password == "" {
		s.opts.Status.Post(TargetCredentialsMessage, StatusError, "All fields are required")
		return s.opts.Views.Resolve(ctx), nil
	}

	s.opts.Status.Post(TargetCredentialsMessage, StatusInfo, "Submitting...")
	env, err := client.UpdateAdminCredentials(ctx, req)
	if err := s.reportOutcome(TargetCredentialsMessage, env, err); err != nil {
		return s.opts.Views.Resolve(ctx), err
	}
	if !env.OK() {
		return s.opts.Views.Resolve(ctx), nil
	}
	s.recordTelemetry(ctx, "portal.admin.credentials", nil)
	return s.Logout(ctx)
}
