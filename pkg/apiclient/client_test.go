package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginSendsTypedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("expected json content type, got %s", got)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "a@b.com" || req.Type != "user" {
			t.Fatalf("unexpected payload %#v", req)
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			Envelope: Envelope{Status: "success", Message: "Login successful"},
			Role:     "user",
			User:     UserPayload{ID: 1, Name: "Ann", Email: "a@b.com"},
		})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "x", Type: "user"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !resp.OK() || resp.User.Name != "Ann" || resp.Role != "user" {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestCollaboratorErrorIsNotATransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Envelope{Status: "failed", Message: "Incorrect password"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "bad", Type: "user"})
	if err != nil {
		t.Fatalf("collaborator failure must not surface as error: %v", err)
	}
	if resp.OK() {
		t.Fatal("failed status must not report OK")
	}
	if resp.Message != "Incorrect password" {
		t.Fatalf("message must pass through verbatim, got %q", resp.Message)
	}
}

func TestNonJSONBodyIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GetRatings(context.Background()); err == nil {
		t.Fatal("expected decode failure for non-JSON body")
	}
}

func TestSignupUsesMultipartEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Fatalf("expected multipart content type with boundary, got %s", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("name"); got != "Ann" {
			t.Fatalf("expected name field, got %q", got)
		}
		file, header, err := r.FormFile("profilePic")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "avatar.png" {
			t.Fatalf("unexpected filename %s", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(Envelope{Status: "success", Message: "Registration successful!"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.Signup(context.Background(), SignupRequest{
		Name:            "Ann",
		Email:           "a@b.com",
		Password:        "x",
		ConfirmPassword: "x",
		ProfilePic: &FileUpload{
			FieldName: "profilePic",
			FileName:  "avatar.png",
			Content:   []byte{0x89, 0x50, 0x4e, 0x47},
		},
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestDeleteDoctorUsesActionQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/manage-doctor" || r.URL.Query().Get("action") != "delete" {
			t.Fatalf("unexpected request %s", r.URL.String())
		}
		var req DeleteByIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ID != 7 {
			t.Fatalf("unexpected id %d", req.ID)
		}
		_ = json.NewEncoder(w).Encode(Envelope{Status: "success", Message: "Doctor removed"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.DeleteDoctor(context.Background(), 7)
	if err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
	if resp.Message != "Doctor removed" {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestGetWithQueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/my-appointments" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "a@b.com" {
			t.Fatalf("expected email query, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(AppointmentsResponse{
			Envelope:     Envelope{Status: "success"},
			Appointments: []Appointment{{ID: 1, Doctor: "Dr. Smile", Status: "Rescheduled"}},
		})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.MyAppointments(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("my appointments: %v", err)
	}
	if len(resp.Appointments) != 1 || resp.Appointments[0].Status != "Rescheduled" {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
}
