package commands

import (
	"context"
	"errors"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type bookingService interface {
	BookAppointment(ctx context.Context, req apiclient.AppointmentRequest) error
	SendContact(ctx context.Context, req apiclient.ContactRequest) error
}

// BookAppointmentInput wraps the booking form.
type BookAppointmentInput struct {
	Request apiclient.AppointmentRequest
}

// BookAppointmentCommand submits a validated booking.
type BookAppointmentCommand struct {
	service   bookingService
	telemetry Telemetry
}

// NewBookAppointmentCommand creates the command.
func NewBookAppointmentCommand(service bookingService, telemetry Telemetry) *BookAppointmentCommand {
	return &BookAppointmentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[BookAppointmentInput] = (*BookAppointmentCommand)(nil)

// Execute books the appointment.
func (c *BookAppointmentCommand) Execute(ctx context.Context, msg BookAppointmentInput) error {
	if c.service == nil {
		return errors.New("booking command requires service")
	}
	if err := c.service.BookAppointment(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.book", map[string]any{
		"doctor": msg.Request.Doctor,
	})
	return nil
}

// SendContactInput wraps the contact form.
type SendContactInput struct {
	Request apiclient.ContactRequest
}

// SendContactCommand submits a contact message.
type SendContactCommand struct {
	service   bookingService
	telemetry Telemetry
}

// NewSendContactCommand creates the command.
func NewSendContactCommand(service bookingService, telemetry Telemetry) *SendContactCommand {
	return &SendContactCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SendContactInput] = (*SendContactCommand)(nil)

// Execute sends the message.
func (c *SendContactCommand) Execute(ctx context.Context, msg SendContactInput) error {
	if c.service == nil {
		return errors.New("contact command requires service")
	}
	if err := c.service.SendContact(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.contact", nil)
	return nil
}
