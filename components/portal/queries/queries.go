package queries

import (
	"context"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type profileService interface {
	LoadProfile(ctx context.Context) (apiclient.ProfileData, error)
}

// ProfileRequest is empty: the profile is resolved from the session.
type ProfileRequest struct{}

// ProfileQuery reads the signed-in user's profile.
type ProfileQuery struct {
	service profileService
}

// NewProfileQuery builds the query.
func NewProfileQuery(service profileService) *ProfileQuery {
	return &ProfileQuery{service: service}
}

var _ gocommand.Querier[ProfileRequest, apiclient.ProfileData] = (*ProfileQuery)(nil)

// Query fetches the profile.
func (q *ProfileQuery) Query(ctx context.Context, _ ProfileRequest) (apiclient.ProfileData, error) {
	return q.service.LoadProfile(ctx)
}

type appointmentsService interface {
	RenderMyAppointments(ctx context.Context) (string, error)
}

// MyAppointmentsRequest is empty: the list is scoped to the session.
type MyAppointmentsRequest struct{}

// MyAppointmentsQuery renders the signed-in user's appointment cards.
type MyAppointmentsQuery struct {
	service appointmentsService
}

// NewMyAppointmentsQuery builds the query.
func NewMyAppointmentsQuery(service appointmentsService) *MyAppointmentsQuery {
	return &MyAppointmentsQuery{service: service}
}

var _ gocommand.Querier[MyAppointmentsRequest, string] = (*MyAppointmentsQuery)(nil)

// Query renders the appointment fragment.
func (q *MyAppointmentsQuery) Query(ctx context.Context, _ MyAppointmentsRequest) (string, error) {
	return q.service.RenderMyAppointments(ctx)
}

type doctorsService interface {
	LoadDoctors(ctx context.Context) ([]apiclient.Doctor, error)
}

// DoctorsRequest is empty: the public list has no parameters.
type DoctorsRequest struct{}

// DoctorsQuery reads the public doctor list.
type DoctorsQuery struct {
	service doctorsService
}

// NewDoctorsQuery builds the query.
func NewDoctorsQuery(service doctorsService) *DoctorsQuery {
	return &DoctorsQuery{service: service}
}

var _ gocommand.Querier[DoctorsRequest, []apiclient.Doctor] = (*DoctorsQuery)(nil)

// Query fetches the doctor list.
func (q *DoctorsQuery) Query(ctx context.Context, _ DoctorsRequest) ([]apiclient.Doctor, error) {
	return q.service.LoadDoctors(ctx)
}

type ratingsService interface {
	RenderRatings(ctx context.Context) (string, error)
}

// RatingsRequest is empty: ownership is resolved from the session.
type RatingsRequest struct{}

// RatingsQuery renders the review cards.
type RatingsQuery struct {
	service ratingsService
}

// NewRatingsQuery builds the query.
func NewRatingsQuery(service ratingsService) *RatingsQuery {
	return &RatingsQuery{service: service}
}

var _ gocommand.Querier[RatingsRequest, string] = (*RatingsQuery)(nil)

// Query renders the ratings fragment.
func (q *RatingsQuery) Query(ctx context.Context, _ RatingsRequest) (string, error) {
	return q.service.RenderRatings(ctx)
}

type dashboardService interface {
	LoadAdminDashboard(ctx context.Context) (portal.AdminDashboard, error)
}

// AdminDashboardRequest is empty: the payload is fixed.
type AdminDashboardRequest struct{}

// AdminDashboardQuery loads the aggregate admin payload.
type AdminDashboardQuery struct {
	service dashboardService
}

// NewAdminDashboardQuery builds the query.
func NewAdminDashboardQuery(service dashboardService) *AdminDashboardQuery {
	return &AdminDashboardQuery{service: service}
}

var _ gocommand.Querier[AdminDashboardRequest, portal.AdminDashboard] = (*AdminDashboardQuery)(nil)

// Query loads the dashboard.
func (q *AdminDashboardQuery) Query(ctx context.Context, _ AdminDashboardRequest) (portal.AdminDashboard, error) {
	return q.service.LoadAdminDashboard(ctx)
}

type reportReader interface {
	RenderAdminReports(ctx context.Context) (string, error)
	RenderUserReports(ctx context.Context) (string, error)
	ReportDropdowns(ctx context.Context) ([]apiclient.UserRecord, []apiclient.Doctor, error)
}

// ReportsRequest selects the report scope.
type ReportsRequest struct {
	// Admin renders the full table; otherwise the session's own cards.
	Admin bool
}

// ReportsQuery renders report fragments for either scope.
type ReportsQuery struct {
	service reportReader
}

// NewReportsQuery builds the query.
func NewReportsQuery(service reportReader) *ReportsQuery {
	return &ReportsQuery{service: service}
}

var _ gocommand.Querier[ReportsRequest, string] = (*ReportsQuery)(nil)

// Query renders the report fragment.
func (q *ReportsQuery) Query(ctx context.Context, req ReportsRequest) (string, error) {
	if req.Admin {
		return q.service.RenderAdminReports(ctx)
	}
	return q.service.RenderUserReports(ctx)
}

// DropdownData feeds the report form selects.
type DropdownData struct {
	Users   []apiclient.UserRecord
	Doctors []apiclient.Doctor
}

// DropdownsRequest is empty.
type DropdownsRequest struct{}

// DropdownsQuery loads the report form select options.
type DropdownsQuery struct {
	service reportReader
}

// NewDropdownsQuery builds the query.
func NewDropdownsQuery(service reportReader) *DropdownsQuery {
	return &DropdownsQuery{service: service}
}

var _ gocommand.Querier[DropdownsRequest, DropdownData] = (*DropdownsQuery)(nil)

// Query loads both option lists.
func (q *DropdownsQuery) Query(ctx context.Context, _ DropdownsRequest) (DropdownData, error) {
	users, doctors, err := q.service.ReportDropdowns(ctx)
	if err != nil {
		return DropdownData{}, err
	}
	return DropdownData{Users: users, Doctors: doctors}, nil
}
