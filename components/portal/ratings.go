package portal

import (
	"context"
	"strconv"
	"strings"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
)

// SubmitRatingInput carries the raw rating form values. Rating arrives
// as the raw widget string so the unset state ("" or "0") can be
// rejected before parsing.
type SubmitRatingInput struct {
	DoctorName string
	Rating     string
	ReviewText string
}

// SubmitRating validates the rating form client-side, in form order,
// and posts it under the signed-in identity.
func (s *Service) SubmitRating(ctx context.Context, input SubmitRatingInput) error {
	client, err := s.client()
	if err != nil {
		return err
	}

	if strings.TrimSpace(input.DoctorName) == "" {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please select a doctor")
		return nil
	}
	stars, parseErr := strconv.Atoi(strings.TrimSpace(input.Rating))
	if parseErr != nil || stars == 0 {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please select a star rating")
		return nil
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please write a review")
		return nil
	}
	session, err := s.userSession(ctx)
	if err != nil {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please login to submit a rating")
		return nil
	}

	// The star widget can only produce 1..5; the schema backstops callers
	// that bypass it.
	if err := s.opts.Validator.Validate(RatingForm, map[string]any{
		"doctor_name": input.DoctorName,
		"rating":      stars,
		"review_text": input.ReviewText,
	}); err != nil {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Rating must be between 1 and 5")
		return nil
	}

	s.opts.Status.Post(TargetRatingMessage, StatusInfo, "Submitting...")
	env, err := client.SubmitRating(ctx, apiclient.SubmitRatingRequest{
		DoctorName: input.DoctorName,
		UserEmail:  session.Email,
		UserName:   session.Name,
		Rating:     stars,
		ReviewText: input.ReviewText,
	})
	if err := s.reportOutcome(TargetRatingMessage, env, err); err != nil {
		return err
	}
	if env.OK() {
		s.recordTelemetry(ctx, "portal.rating.submit", map[string]any{"stars": stars})
	}
	return nil
}

// UpdateRating edits the caller's own review.
func (s *Service) UpdateRating(ctx context.Context, ratingID, stars int, reviewText string) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if stars < 1 || stars > 5 {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Rating must be between 1 and 5")
		return nil
	}
	session, err := s.userSession(ctx)
	if err != nil {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please login to edit ratings")
		return nil
	}

	env, err := client.UpdateRating(ctx, apiclient.UpdateRatingRequest{
		RatingID:   ratingID,
		UserEmail:  session.Email,
		Rating:     stars,
		ReviewText: reviewText,
	})
	return s.reportOutcome(TargetRatingMessage, env, err)
}

// DeleteRating removes a review. The admin session bypasses ownership;
// a user deletes under their own email and the backend enforces the rest.
func (s *Service) DeleteRating(ctx context.Context, ratingID int) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	session := s.opts.Sessions.Get(ctx)
	if session.Role == RoleGuest {
		s.opts.Status.Post(TargetRatingMessage, StatusError, "Please login to edit ratings")
		return nil
	}

	env, err := client.DeleteRating(ctx, apiclient.DeleteRatingRequest{
		RatingID:  ratingID,
		UserEmail: session.Email,
		IsAdmin:   session.Role == RoleAdmin,
	})
	if err == nil && !env.OK() && env.Message == "" {
		env.Message = "Failed to delete"
	}
	return s.reportOutcome(TargetRatingMessage, env, err)
}

// RenderRatings renders every review card with the actions the current
// session may take on it.
func (s *Service) RenderRatings(ctx context.Context) (string, error) {
	client, err := s.client()
	if err != nil {
		return "", err
	}
	tables, err := s.tables()
	if err != nil {
		return "", err
	}
	session := s.opts.Sessions.Get(ctx)

	resp, err := client.GetRatings(ctx)
	if err != nil {
		return "", err
	}
	records := make([]Record, len(resp.Ratings))
	for i, rating := range resp.Ratings {
		canEdit, canDelete := RatingActions(session, rating.UserEmail)
		records[i] = Record{
			"id":          rating.ID,
			"doctor_name": rating.DoctorName,
			"user_name":   rating.UserName,
			"review_text": rating.ReviewText,
			"created_at":  rating.CreatedAt,
			"stars":       StarMarkup(rating.Rating),
			"can_edit":    canEdit,
			"can_delete":  canDelete,
		}
	}
	return tables.RenderNamed(records, "rows/rating", EmptyState{
		Message: "No ratings yet.",
		Block:   true,
	})
}
