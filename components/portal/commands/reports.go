package commands

import (
	"context"
	"errors"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type reportService interface {
	ManageReport(ctx context.Context, req apiclient.ManageReportRequest) error
	DeleteReport(ctx context.Context, id int) error
}

// ManageReportInput wraps the report upload form.
type ManageReportInput struct {
	Request apiclient.ManageReportRequest
}

// ManageReportCommand uploads a report.
type ManageReportCommand struct {
	service   reportService
	telemetry Telemetry
}

// NewManageReportCommand creates the command.
func NewManageReportCommand(service reportService, telemetry Telemetry) *ManageReportCommand {
	return &ManageReportCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ManageReportInput] = (*ManageReportCommand)(nil)

// Execute uploads the report.
func (c *ManageReportCommand) Execute(ctx context.Context, msg ManageReportInput) error {
	if c.service == nil {
		return errors.New("report command requires service")
	}
	if err := c.service.ManageReport(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.report.add", map[string]any{
		"user_email": msg.Request.UserEmail,
	})
	return nil
}

// DeleteReportInput identifies the report to remove.
type DeleteReportInput struct {
	ID int
}

// DeleteReportCommand removes a report.
type DeleteReportCommand struct {
	service   reportService
	telemetry Telemetry
}

// NewDeleteReportCommand creates the command.
func NewDeleteReportCommand(service reportService, telemetry Telemetry) *DeleteReportCommand {
	return &DeleteReportCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteReportInput] = (*DeleteReportCommand)(nil)

// Execute deletes the report.
func (c *DeleteReportCommand) Execute(ctx context.Context, msg DeleteReportInput) error {
	if c.service == nil {
		return errors.New("report command requires service")
	}
	if err := c.service.DeleteReport(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.report.delete", map[string]any{"id": msg.ID})
	return nil
}
