package commands

import (
	"context"
	"errors"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type adminService interface {
	UpdateAppointment(ctx context.Context, req apiclient.UpdateAppointmentRequest) error
	UpdateAdminCredentials(ctx context.Context, req apiclient.AdminCredentialsRequest) (portal.ViewMode, error)
}

// UpdateAppointmentInput wraps the admin edit form.
type UpdateAppointmentInput struct {
	Request apiclient.UpdateAppointmentRequest
}

// UpdateAppointmentCommand edits one appointment row.
type UpdateAppointmentCommand struct {
	service   adminService
	telemetry Telemetry
}

// NewUpdateAppointmentCommand creates the command.
func NewUpdateAppointmentCommand(service adminService, telemetry Telemetry) *UpdateAppointmentCommand {
	return &UpdateAppointmentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateAppointmentInput] = (*UpdateAppointmentCommand)(nil)

// Execute applies the edit.
func (c *UpdateAppointmentCommand) Execute(ctx context.Context, msg UpdateAppointmentInput) error {
	if c.service == nil {
		return errors.New("appointment command requires service")
	}
	if err := c.service.UpdateAppointment(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.appointment.update", map[string]any{
		"id":     msg.Request.ID,
		"status": msg.Request.Status,
	})
	return nil
}

// UpdateCredentialsInput wraps the credential rotation form.
type UpdateCredentialsInput struct {
	Request apiclient.AdminCredentialsRequest
}

// UpdateCredentialsCommand rotates the admin login.
type UpdateCredentialsCommand struct {
	service   adminService
	telemetry Telemetry
}

// NewUpdateCredentialsCommand creates the command.
func NewUpdateCredentialsCommand(service adminService, telemetry Telemetry) *UpdateCredentialsCommand {
	return &UpdateCredentialsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateCredentialsInput] = (*UpdateCredentialsCommand)(nil)

// Execute rotates the credentials; success forces a logout.
func (c *UpdateCredentialsCommand) Execute(ctx context.Context, msg UpdateCredentialsInput) error {
	if c.service == nil {
		return errors.New("credentials command requires service")
	}
	mode, err := c.service.UpdateAdminCredentials(ctx, msg.Request)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.credentials", map[string]any{
		"mode": string(mode),
	})
	return nil
}
