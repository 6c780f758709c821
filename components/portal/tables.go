package portal

import (
	"errors"
	"strings"
)

// Record is one row of domain data, passed through as received from the
// collaborator. Fields are not validated beyond presence at render time.
type Record map[string]any

// RowTemplate turns one record into row markup.
type RowTemplate func(record Record) (string, error)

// EmptyState configures the placeholder rendered for an empty collection.
// An empty container is never produced; the placeholder keeps table layout
// from collapsing.
type EmptyState struct {
	Message string
	Colspan int
	// Block renders a standalone paragraph instead of a table row, for
	// card-style containers such as the ratings grid.
	Block bool
}

const defaultEmptyMessage = "No records found."

var errMissingRenderer = errors.New("portal: table renderer requires a template renderer")

// TableRenderer joins an ordered record sequence into a replaceable HTML
// fragment. Row order is preserved exactly as received; no client-side
// re-sorting happens here.
type TableRenderer struct {
	renderer Renderer
}

// NewTableRenderer wires the fragment templates into a table renderer.
func NewTableRenderer(renderer Renderer) *TableRenderer {
	return &TableRenderer{renderer: renderer}
}

// Render produces the fragment body for the record sequence. Empty input
// yields exactly one placeholder row with a non-empty message.
func (t *TableRenderer) Render(records []Record, row RowTemplate, empty EmptyState) (string, error) {
	if t.renderer == nil {
		return "", errMissingRenderer
	}
	if len(records) == 0 {
		return t.renderEmpty(empty)
	}
	var builder strings.Builder
	for _, record := range records {
		markup, err := row(record)
		if err != nil {
			return "", err
		}
		builder.WriteString(markup)
	}
	return builder.String(), nil
}

// RenderNamed renders every record through the named fragment template.
func (t *TableRenderer) RenderNamed(records []Record, templateName string, empty EmptyState) (string, error) {
	return t.Render(records, func(record Record) (string, error) {
		return t.renderer.Render(templateName, map[string]any(record))
	}, empty)
}

func (t *TableRenderer) renderEmpty(empty EmptyState) (string, error) {
	message := strings.TrimSpace(empty.Message)
	if message == "" {
		message = defaultEmptyMessage
	}
	if empty.Block {
		return t.renderer.Render("empty", map[string]any{"message": message})
	}
	colspan := empty.Colspan
	if colspan <= 0 {
		colspan = 1
	}
	return t.renderer.Render("placeholder", map[string]any{
		"message": message,
		"colspan": colspan,
	})
}

// NormalizeEmail canonicalizes an email for ownership comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameOwner reports whether two emails identify the same owner after
// normalization. Empty viewer identity never owns anything.
func SameOwner(viewerEmail, ownerEmail string) bool {
	viewer := NormalizeEmail(viewerEmail)
	if viewer == "" {
		return false
	}
	return viewer == NormalizeEmail(ownerEmail)
}

// RatingActions decides which actions a rating row exposes. Owners may edit
// and delete their own review; admin context bypasses ownership and always
// exposes delete, never edit.
func RatingActions(session Session, ownerEmail string) (canEdit, canDelete bool) {
	if session.Role == RoleAdmin {
		return false, true
	}
	own := SameOwner(session.Email, ownerEmail)
	return own, own
}

// StarMarkup renders n filled stars of five for a rating value.
func StarMarkup(rating int) string {
	var builder strings.Builder
	for i := 0; i < 5; i++ {
		if i < rating {
			builder.WriteString(`<i class="fas fa-star" style="color:#00b8b8;"></i>`)
		} else {
			builder.WriteString(`<i class="far fa-star" style="color:#ddd;"></i>`)
		}
	}
	return builder.String()
}
