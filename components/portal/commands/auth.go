package commands

import (
	"context"
	"errors"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type authService interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (portal.ViewMode, error)
	Logout(ctx context.Context) (portal.ViewMode, error)
	Signup(ctx context.Context, req apiclient.SignupRequest) error
}

// LoginInput carries either login-form variant.
type LoginInput struct {
	Request apiclient.LoginRequest
}

// LoginCommand authenticates and applies the resolved view.
type LoginCommand struct {
	service   authService
	telemetry Telemetry
}

// NewLoginCommand creates the command.
func NewLoginCommand(service authService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoginInput] = (*LoginCommand)(nil)

// Execute runs the login flow.
func (c *LoginCommand) Execute(ctx context.Context, msg LoginInput) error {
	if c.service == nil {
		return errors.New("login command requires service")
	}
	mode, err := c.service.Login(ctx, msg.Request)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.login", map[string]any{
		"mode": string(mode),
		"type": msg.Request.Type,
	})
	return nil
}

// LogoutInput is empty; logout needs no parameters.
type LogoutInput struct{}

// LogoutCommand clears the session and resets to the guest view.
type LogoutCommand struct {
	service   authService
	telemetry Telemetry
}

// NewLogoutCommand creates the command.
func NewLogoutCommand(service authService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute runs the logout flow.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.service == nil {
		return errors.New("logout command requires service")
	}
	if _, err := c.service.Logout(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.logout", nil)
	return nil
}

// SignupInput wraps the registration form.
type SignupInput struct {
	Request apiclient.SignupRequest
}

// SignupCommand submits a validated registration.
type SignupCommand struct {
	service   authService
	telemetry Telemetry
}

// NewSignupCommand creates the command.
func NewSignupCommand(service authService, telemetry Telemetry) *SignupCommand {
	return &SignupCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SignupInput] = (*SignupCommand)(nil)

// Execute runs the signup flow.
func (c *SignupCommand) Execute(ctx context.Context, msg SignupInput) error {
	if c.service == nil {
		return errors.New("signup command requires service")
	}
	if err := c.service.Signup(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.signup", nil)
	return nil
}
