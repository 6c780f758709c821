package apiclient

// Envelope is the response framing shared by every collaborator endpoint.
// The backend reports "success", "error", or "failed"; callers branch on
// OK() rather than on HTTP status codes.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the collaborator accepted the request.
func (e Envelope) OK() bool {
	return e.Status == "success"
}

// UserPayload is the identity block returned by /login.
type UserPayload struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

// LoginResponse discriminates admin vs user logins via Role.
type LoginResponse struct {
	Envelope
	Role string      `json:"role"`
	User UserPayload `json:"user"`
}

// LoginRequest covers both login variants. Type selects the collaborator
// lookup: "user" sends Email, "admin" sends Username.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// SignupRequest is sent as multipart form data so the optional profile
// image can ride along.
type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	ProfilePic      *FileUpload
}

// FileUpload stages binary form fields for multipart requests.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   []byte
}

// AppointmentRequest books a visit.
type AppointmentRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Doctor          string `json:"doctor"`
	AppointmentDate string `json:"appointment_date"`
	Message         string `json:"message,omitempty"`
}

// ContactRequest posts a contact-form message.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ProfileData mirrors the /user-profile payload.
type ProfileData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        *int   `json:"age"`
	BloodGroup string `json:"blood_group"`
	Gender     string `json:"gender"`
	ProfilePic string `json:"profile_pic"`
}

// ProfileResponse wraps a single profile lookup.
type ProfileResponse struct {
	Envelope
	User ProfileData `json:"user"`
}

// UpdateProfileRequest is multipart: text fields plus an optional image.
type UpdateProfileRequest struct {
	Email      string
	Name       string
	Age        string
	BloodGroup string
	Gender     string
	ProfilePic *FileUpload
}

// UpdateProfileResponse may carry the stored image path back.
type UpdateProfileResponse struct {
	Envelope
	NewPic string `json:"newPic,omitempty"`
}

// Appointment is one row of appointment data, passed through as received.
type Appointment struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Doctor          string `json:"doctor"`
	AppointmentDate string `json:"appointment_date"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// AppointmentsResponse lists a patient's appointments.
type AppointmentsResponse struct {
	Envelope
	Appointments []Appointment `json:"appointments"`
}

// Doctor is one practitioner row.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// DoctorsResponse lists doctors.
type DoctorsResponse struct {
	Envelope
	Doctors []Doctor `json:"doctors"`
}

// ManageDoctorRequest creates a doctor (multipart per the collaborator).
type ManageDoctorRequest struct {
	Name           string
	Specialization string
	Image          *FileUpload
}

// DeleteByIDRequest is the JSON body for ?action=delete endpoints.
type DeleteByIDRequest struct {
	ID int `json:"id"`
}

// UserRecord is one patient row from the admin dashboard payload.
type UserRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        *int   `json:"age"`
	Gender     string `json:"gender"`
	BloodType  string `json:"blood_type"`
	ProfilePic string `json:"profile_pic"`
}

// UsersResponse lists patients.
type UsersResponse struct {
	Envelope
	Users []UserRecord `json:"users"`
}

// DashboardStats carries the aggregate counters.
type DashboardStats struct {
	Users        int `json:"users"`
	Appointments int `json:"appointments"`
	Doctors      int `json:"doctors"`
}

// AdminDashboardResponse aggregates stats plus the admin tables.
type AdminDashboardResponse struct {
	Envelope
	Stats        DashboardStats `json:"stats"`
	Users        []UserRecord   `json:"users"`
	Appointments []Appointment  `json:"appointments"`
	Doctors      []Doctor       `json:"doctors"`
}

// UpdateAppointmentRequest edits an appointment from the admin table.
type UpdateAppointmentRequest struct {
	ID              int    `json:"id"`
	Doctor          string `json:"doctor,omitempty"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	Status          string `json:"status,omitempty"`
}

// AdminCredentialsRequest rotates the admin login.
type AdminCredentialsRequest struct {
	CurrentUsername string `json:"current_username"`
	Username        string `json:"username"`
	Password        string `json:"password"`
}

// Rating is one review row.
type Rating struct {
	ID         int    `json:"id"`
	DoctorName string `json:"doctor_name"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}

// RatingsResponse lists ratings newest-first as the collaborator orders them.
type RatingsResponse struct {
	Envelope
	Ratings []Rating `json:"ratings"`
}

// SubmitRatingRequest creates a rating.
type SubmitRatingRequest struct {
	DoctorName string `json:"doctor_name"`
	UserEmail  string `json:"user_email"`
	UserName   string `json:"user_name"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// UpdateRatingRequest edits the caller's own rating.
type UpdateRatingRequest struct {
	RatingID   int    `json:"rating_id"`
	UserEmail  string `json:"user_email"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// DeleteRatingRequest removes a rating; IsAdmin bypasses ownership.
type DeleteRatingRequest struct {
	RatingID  int    `json:"rating_id"`
	UserEmail string `json:"user_email,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}

// Report is one uploaded report row.
type Report struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	UserEmail  string `json:"user_email"`
	DoctorName string `json:"doctor_name"`
	ReportDate string `json:"report_date"`
}

// ReportsResponse lists reports.
type ReportsResponse struct {
	Envelope
	Reports []Report `json:"reports"`
}

// ManageReportRequest creates a report; the PDF travels as multipart.
type ManageReportRequest struct {
	Title      string
	UserEmail  string
	DoctorName string
	ReportDate string
	File       *FileUpload
}
