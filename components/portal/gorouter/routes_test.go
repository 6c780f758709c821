package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	router "github.com/goliatone/go-router"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/components/portal/commands"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/service missing")
	}
}

func TestRegisterRatingsRoute(t *testing.T) {
	mock := newMockRouter()
	service := portal.NewService(portal.Options{
		Client:   apiclient.NewMockClient(apiclient.MockData{Ratings: apiclient.RatingsResponse{Envelope: apiclient.Envelope{Status: "success"}}}),
		Sessions: portal.NewSessionStore(nil),
	})

	cfg := Config[struct{}]{
		Router:  mock,
		Service: service,
		API:     &stubExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/portal/ratings"]
	if !ok {
		t.Fatalf("expected ratings route to be registered")
	}

	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !strings.Contains(string(ctx.body), "No ratings yet.") {
		t.Fatalf("expected empty-state markup, got %q", ctx.body)
	}
	if ctx.headers["Content-Type"] != "text/html; charset=utf-8" {
		t.Fatalf("expected html content type")
	}
}

func TestRegisterLoginRouteDispatchesExecutor(t *testing.T) {
	mock := newMockRouter()
	service := portal.NewService(portal.Options{
		Client:   apiclient.NewMockClient(apiclient.MockData{}),
		Sessions: portal.NewSessionStore(nil),
	})
	exec := &stubExecutor{}

	if err := Register(Config[struct{}]{Router: mock, Service: service, API: exec}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["POST:/portal/login"]
	if !ok {
		t.Fatalf("expected login route to be registered")
	}

	ctx := newMockContext()
	payload, _ := json.Marshal(apiclient.LoginRequest{Email: "a@b.com", Password: "pw", Type: "user"})
	ctx.body = payload
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if exec.loginCalls != 1 {
		t.Fatalf("expected login executor call")
	}
	if exec.lastLogin.Request.Email != "a@b.com" {
		t.Fatalf("expected login payload propagation")
	}
}

func TestRegisterDeleteRatingParsesID(t *testing.T) {
	mock := newMockRouter()
	service := portal.NewService(portal.Options{
		Client:   apiclient.NewMockClient(apiclient.MockData{}),
		Sessions: portal.NewSessionStore(nil),
	})
	exec := &stubExecutor{}

	if err := Register(Config[struct{}]{Router: mock, Service: service, API: exec}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["DELETE:/portal/ratings/:id"]
	if !ok {
		t.Fatalf("expected rating delete route to be registered")
	}

	ctx := newMockContext()
	ctx.params["id"] = "7"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if exec.lastDeletedRating != 7 {
		t.Fatalf("expected rating id 7, got %d", exec.lastDeletedRating)
	}
}

func TestRegisterHydratesSessionFromLocals(t *testing.T) {
	mock := newMockRouter()
	sessions := portal.NewSessionStore(nil)
	service := portal.NewService(portal.Options{
		Client:   apiclient.NewMockClient(apiclient.MockData{Appointments: apiclient.AppointmentsResponse{Envelope: apiclient.Envelope{Status: "success"}}}),
		Sessions: sessions,
	})

	if err := Register(Config[struct{}]{Router: mock, Service: service, API: &stubExecutor{}}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	ctx := newMockContext()
	ctx.locals["role"] = "user"
	ctx.locals["user_name"] = "Ann"
	ctx.locals["user_email"] = "a@b.com"

	h := mock.routes["GET:/portal/appointments/mine"]
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	got := sessions.Get(context.Background())
	if got.Role != portal.RoleUser || got.Name != "Ann" {
		t.Fatalf("expected hydrated user session, got %+v", got)
	}
}

func TestRegisterSurfacesSessionPersistFailure(t *testing.T) {
	mock := newMockRouter()
	service := portal.NewService(portal.Options{
		Client:   apiclient.NewMockClient(apiclient.MockData{Ratings: apiclient.RatingsResponse{Envelope: apiclient.Envelope{Status: "success"}}}),
		Sessions: portal.NewSessionStore(failingStateStore{}),
	})

	if err := Register(Config[struct{}]{Router: mock, Service: service, API: &stubExecutor{}}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	ctx := newMockContext()
	ctx.locals["role"] = "user"
	ctx.locals["user_name"] = "Ann"

	h := mock.routes["GET:/portal/ratings"]
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != 500 {
		t.Fatalf("expected 500 when the session persist fails, got %d", ctx.status)
	}
	if !strings.Contains(string(ctx.body), "error") {
		t.Fatalf("expected error payload, got %q", ctx.body)
	}
}

// --- Test helpers ---

// The doubles embed the go-router interfaces so only the methods the routes
// exercise need concrete implementations.
var (
	_ router.Router[struct{}] = (*mockRouter)(nil)
	_ router.Context          = (*mockContext)(nil)
	_ router.RouteInfo        = mockRouteInfo{}
)

type mockRouter struct {
	router.Router[struct{}]

	prefix string
	routes map[string]router.HandlerFunc
}

func newMockRouter() *mockRouter {
	return &mockRouter{routes: map[string]router.HandlerFunc{}}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	full := m.prefix + path
	m.routes[method+":"+full] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PUT), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.DELETE), path, handler)
	return mockRouteInfo{}
}

type mockRouteInfo struct {
	router.RouteInfo
}

func (mockRouteInfo) SetName(string) router.RouteInfo { return mockRouteInfo{} }

// routerContext lets mockContext embed the interface without the field name
// colliding with its Context() accessor.
type routerContext = router.Context

type mockContext struct {
	routerContext

	ctx     context.Context
	headers map[string]string
	body    []byte
	locals  map[any]any
	params  map[string]string
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.body }

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

type failingStateStore struct{}

func (failingStateStore) Get(context.Context, string) (string, bool) { return "", false }

func (failingStateStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func (failingStateStore) Delete(context.Context, string) error { return nil }

func (failingStateStore) Clear(context.Context) error { return nil }

type stubExecutor struct {
	loginCalls        int
	lastLogin         commands.LoginInput
	lastDeletedRating int
}

func (s *stubExecutor) Login(ctx context.Context, msg commands.LoginInput) error {
	s.loginCalls++
	s.lastLogin = msg
	return nil
}

func (s *stubExecutor) Logout(context.Context) error { return nil }

func (s *stubExecutor) Signup(context.Context, commands.SignupInput) error { return nil }

func (s *stubExecutor) Book(context.Context, commands.BookAppointmentInput) error { return nil }

func (s *stubExecutor) Contact(context.Context, commands.SendContactInput) error { return nil }

func (s *stubExecutor) UpdateProfile(context.Context, commands.UpdateProfileInput) error { return nil }

func (s *stubExecutor) SubmitRating(context.Context, portal.SubmitRatingInput) error { return nil }

func (s *stubExecutor) UpdateRating(context.Context, commands.UpdateRatingInput) error { return nil }

func (s *stubExecutor) DeleteRating(ctx context.Context, msg commands.DeleteRatingInput) error {
	s.lastDeletedRating = msg.RatingID
	return nil
}

func (s *stubExecutor) ManageDoctor(context.Context, commands.ManageDoctorInput) error { return nil }

func (s *stubExecutor) DeleteDoctor(context.Context, commands.DeleteDoctorInput) error { return nil }

func (s *stubExecutor) ManageReport(context.Context, commands.ManageReportInput) error { return nil }

func (s *stubExecutor) DeleteReport(context.Context, commands.DeleteReportInput) error { return nil }

func (s *stubExecutor) UpdateAppointment(context.Context, commands.UpdateAppointmentInput) error {
	return nil
}

func (s *stubExecutor) UpdateCredentials(context.Context, commands.UpdateCredentialsInput) error {
	return nil
}
