package commands

import (
	"context"
	"errors"

	portal "github.com/dentalexperts/go-portal/components/portal"
	"github.com/dentalexperts/go-portal/pkg/apiclient"
	gocommand "github.com/goliatone/go-command"
)

type profileEditor interface {
	BeginProfileEdit(ctx context.Context) (portal.EditSession, error)
	SetProfileField(ctx context.Context, field, value string) error
	StageProfilePhoto(ctx context.Context, upload apiclient.FileUpload) error
	SaveProfile(ctx context.Context) (portal.SaveResult, error)
}

// UpdateProfileInput carries the edited fields and an optional photo.
type UpdateProfileInput struct {
	Fields map[string]string
	Photo  *apiclient.FileUpload
}

// UpdateProfileCommand runs a full edit session: begin, stage, save.
type UpdateProfileCommand struct {
	service   profileEditor
	telemetry Telemetry
}

// NewUpdateProfileCommand creates the command.
func NewUpdateProfileCommand(service profileEditor, telemetry Telemetry) *UpdateProfileCommand {
	return &UpdateProfileCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateProfileInput] = (*UpdateProfileCommand)(nil)

// Execute stages the edits and commits them. A collaborator refusal is
// reported through the status sink, not as an error.
func (c *UpdateProfileCommand) Execute(ctx context.Context, msg UpdateProfileInput) error {
	if c.service == nil {
		return errors.New("profile command requires service")
	}
	if _, err := c.service.BeginProfileEdit(ctx); err != nil {
		return err
	}
	for field, value := range msg.Fields {
		if err := c.service.SetProfileField(ctx, field, value); err != nil {
			return err
		}
	}
	if msg.Photo != nil {
		if err := c.service.StageProfilePhoto(ctx, *msg.Photo); err != nil {
			return err
		}
	}
	result, err := c.service.SaveProfile(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.profile", map[string]any{
		"rolled_back": result.RolledBack,
	})
	return nil
}
