package commands

import (
	"context"
	"errors"

	portal "github.com/dentalexperts/go-portal/components/portal"
	gocommand "github.com/goliatone/go-command"
)

type ratingService interface {
	SubmitRating(ctx context.Context, input portal.SubmitRatingInput) error
	UpdateRating(ctx context.Context, ratingID, stars int, reviewText string) error
	DeleteRating(ctx context.Context, ratingID int) error
}

// SubmitRatingCommand posts a new review.
type SubmitRatingCommand struct {
	service   ratingService
	telemetry Telemetry
}

// NewSubmitRatingCommand creates the command.
func NewSubmitRatingCommand(service ratingService, telemetry Telemetry) *SubmitRatingCommand {
	return &SubmitRatingCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[portal.SubmitRatingInput] = (*SubmitRatingCommand)(nil)

// Execute submits the review.
func (c *SubmitRatingCommand) Execute(ctx context.Context, msg portal.SubmitRatingInput) error {
	if c.service == nil {
		return errors.New("rating command requires service")
	}
	if err := c.service.SubmitRating(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.rating.submit", map[string]any{
		"doctor": msg.DoctorName,
	})
	return nil
}

// UpdateRatingInput edits an existing review.
type UpdateRatingInput struct {
	RatingID   int
	Stars      int
	ReviewText string
}

// UpdateRatingCommand edits the caller's review.
type UpdateRatingCommand struct {
	service   ratingService
	telemetry Telemetry
}

// NewUpdateRatingCommand creates the command.
func NewUpdateRatingCommand(service ratingService, telemetry Telemetry) *UpdateRatingCommand {
	return &UpdateRatingCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateRatingInput] = (*UpdateRatingCommand)(nil)

// Execute updates the review.
func (c *UpdateRatingCommand) Execute(ctx context.Context, msg UpdateRatingInput) error {
	if c.service == nil {
		return errors.New("rating command requires service")
	}
	if err := c.service.UpdateRating(ctx, msg.RatingID, msg.Stars, msg.ReviewText); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.rating.update", map[string]any{"id": msg.RatingID})
	return nil
}

// DeleteRatingInput identifies the review to remove.
type DeleteRatingInput struct {
	RatingID int
}

// DeleteRatingCommand removes a review.
type DeleteRatingCommand struct {
	service   ratingService
	telemetry Telemetry
}

// NewDeleteRatingCommand creates the command.
func NewDeleteRatingCommand(service ratingService, telemetry Telemetry) *DeleteRatingCommand {
	return &DeleteRatingCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteRatingInput] = (*DeleteRatingCommand)(nil)

// Execute deletes the review.
func (c *DeleteRatingCommand) Execute(ctx context.Context, msg DeleteRatingInput) error {
	if c.service == nil {
		return errors.New("rating command requires service")
	}
	if err := c.service.DeleteRating(ctx, msg.RatingID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "portal.command.rating.delete", map[string]any{"id": msg.RatingID})
	return nil
}
