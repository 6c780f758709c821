package commands

import (
	"context"
	"errors"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type doctorService interface {
	ManageDoctor(ctx context.Context, req apiclient.ManageDoctorRequest) error
	DeleteDoctor(ctx context.Context, id int) error
}

// ManageDoctorInput wraps the add-doctor form.
type ManageDoctorInput struct {
	Request apiclient.ManageDoctorRequest
}

// ManageDoctorCommand creates a practitioner.
type ManageDoctorCommand struct {
	service   doctorService
	telemetry Telemetry
}

// NewManageDoctorCommand creates the command.
func NewManageDoctorCommand(service doctorService, telemetry Telemetry) *ManageDoctorCommand {
	return &ManageDoctorCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ManageDoctorInput] = (*ManageDoctorCommand)(nil)

// Execute adds the doctor.
func (c *ManageDoctorCommand) Execute(ctx context.Context, msg ManageDoctorInput) error {
	if c.service == nil {
		return errors.New("doctor command requires service")
	}
	if err := c.service.ManageDoctor(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.doctor.add", map[string]any{
		"specialization": msg.Request.Specialization,
	})
	return nil
}

// DeleteDoctorInput identifies the practitioner to remove.
type DeleteDoctorInput struct {
	ID int
}

// DeleteDoctorCommand removes a practitioner.
type DeleteDoctorCommand struct {
	service   doctorService
	telemetry Telemetry
}

// NewDeleteDoctorCommand creates the command.
func NewDeleteDoctorCommand(service doctorService, telemetry Telemetry) *DeleteDoctorCommand {
	return &DeleteDoctorCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteDoctorInput] = (*DeleteDoctorCommand)(nil)

// Execute deletes the doctor.
func (c *DeleteDoctorCommand) Execute(ctx context.Context, msg DeleteDoctorInput) error {
	if c.service == nil {
		return errors.New("doctor command requires service")
	}
	if err := c.service.DeleteDoctor(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.doctor.delete", map[string]any{"id": msg.ID})
	return nil
}
