package portal

import (
	"context"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

// ManageReport uploads a new report record with its PDF attachment.
func (s *Service) ManageReport(ctx context.Context, req apiclient.ManageReportRequest) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return err
	}
	if req.Title == "" || req.UserEmail == "" || req.DoctorName == "" {
		s.opts.Status.Post(TargetReportMessage, StatusError, "All fields are required")
		return nil
	}

	s.opts.Status.Post(TargetReportMessage, StatusInfo, "Submitting...")
	env, err := client.ManageReport(ctx, req)
	return s.reportOutcome(TargetReportMessage, env, err)
}

// DeleteReport removes a report by id.
func (s *Service) DeleteReport(ctx context.Context, id int) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return err
	}
	env, err := client.DeleteReport(ctx, id)
	if err == nil && !env.OK() && env.Message == "" {
		env.Message = "Error deleting report"
	}
	return s.reportOutcome(TargetReportMessage, env, err)
}

// RenderAdminReports renders the full report table for the admin view.
func (s *Service) RenderAdminReports(ctx context.Context) (string, error) {
	client, err := s.client()
	if err != nil {
		return "", err
	}
	tables, err := s.tables()
	if err != nil {
		return "", err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return "", err
	}

	resp, err := client.GetAllReports(ctx)
	if err != nil {
		return "", err
	}
	return tables.RenderNamed(reportRecords(resp.Reports), "rows/report", EmptyState{
		Message: "No reports found.", Colspan: 5,
	})
}

// RenderUserReports renders the signed-in user's report cards.
func (s *Service) RenderUserReports(ctx context.Context) (string, error) {
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

	resp, err := client.GetUserReports(ctx, session.Email)
	if err != nil {
		return "", err
	}
	return tables.RenderNamed(reportRecords(resp.Reports), "cards/report", EmptyState{
		Message: "No reports found.",
		Block:   true,
	})
}

// ReportDropdowns fetches the patient and doctor lists that feed the
// report form selects.
func (s *Service) ReportDropdowns(ctx context.Context) ([]apiclient.UserRecord, []apiclient.Doctor, error) {
	client, err := s.client()
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.adminSession(ctx); err != nil {
		return nil, nil, err
	}

	users, err := client.GetAllUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	doctors, err := client.GetAllDoctors(ctx)
	if err != nil {
		return nil, nil, err
	}
	return users.Users, doctors.Doctors, nil
}

// DownloadReport streams a report PDF.
func (s *Service) DownloadReport(ctx context.Context, id int) ([]byte, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	if s.opts.Sessions.Get(ctx).Role == RoleGuest {
		return nil, errNotSignedIn
	}
	return client.DownloadReport(ctx, id)
}

func reportRecords(reports []apiclient.Report) []Record {
	records := make([]Record, len(reports))
	for i, report := range reports {
		records[i] = Record{
			"id":          report.ID,
			"title":       report.Title,
			"user_email":  report.UserEmail,
			"doctor_name": report.DoctorName,
			"report_date": report.ReportDate,
		}
	}
	return records
}
