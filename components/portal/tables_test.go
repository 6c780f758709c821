package portal

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer formats templates deterministically without pulling in the
// real template engine.
type fakeRenderer struct {
	calls []string
}

func (r *fakeRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	payload, _ := data.(map[string]any)
	switch name {
	case "placeholder":
		return fmt.Sprintf(`<tr><td colspan="%v">%v</td></tr>`, payload["colspan"], payload["message"]), nil
	case "empty":
		return fmt.Sprintf(`<p>%v</p>`, payload["message"]), nil
	default:
		return fmt.Sprintf(`<row template=%q id=%v>`, name, payload["id"]), nil
	}
}

func TestRenderPreservesRecordOrder(t *testing.T) {
	tables := NewTableRenderer(&fakeRenderer{})
	records := []Record{{"id": 3}, {"id": 1}, {"id": 2}}

	out, err := tables.RenderNamed(records, "rows/appointment", EmptyState{Colspan: 5})
	require.NoError(t, err)

	first := strings.Index(out, "id=3")
	second := strings.Index(out, "id=1")
	third := strings.Index(out, "id=2")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "all rows rendered: %s", out)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestEmptyInputRendersExactlyOnePlaceholderRow(t *testing.T) {
	renderer := &fakeRenderer{}
	tables := NewTableRenderer(renderer)

	out, err := tables.RenderNamed(nil, "rows/appointment", EmptyState{Message: "No appointments found.", Colspan: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<tr>"))
	assert.Contains(t, out, "No appointments found.")
	assert.Equal(t, []string{"placeholder"}, renderer.calls)
}

func TestEmptyMessageNeverBlank(t *testing.T) {
	tables := NewTableRenderer(&fakeRenderer{})
	out, err := tables.RenderNamed(nil, "rows/user", EmptyState{Message: "   "})
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
}

func TestBlockEmptyStateUsesParagraph(t *testing.T) {
	tables := NewTableRenderer(&fakeRenderer{})
	out, err := tables.RenderNamed(nil, "rows/rating", EmptyState{
		Message: "No reviews yet. Be the first to rate our doctors!",
		Block:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>No reviews yet. Be the first to rate our doctors!</p>", out)
}

func TestSameOwnerNormalizesCaseAndWhitespace(t *testing.T) {
	assert.True(t, SameOwner(" A@B.com ", "a@b.com"))
	assert.True(t, SameOwner("a@b.com", "  A@B.COM"))
	assert.False(t, SameOwner("", "a@b.com"))
	assert.False(t, SameOwner("x@y.com", "a@b.com"))
}

func TestRatingActions(t *testing.T) {
	owner := Session{Role: RoleUser, Email: " A@B.com "}
	edit, del := RatingActions(owner, "a@b.com")
	assert.True(t, edit)
	assert.True(t, del)

	other := Session{Role: RoleUser, Email: "x@y.com"}
	edit, del = RatingActions(other, "a@b.com")
	assert.False(t, edit)
	assert.False(t, del)

	admin := Session{Role: RoleAdmin}
	edit, del = RatingActions(admin, "a@b.com")
	assert.False(t, edit)
	assert.True(t, del)
}

func TestStarMarkupCounts(t *testing.T) {
	out := StarMarkup(3)
	assert.Equal(t, 3, strings.Count(out, "fas fa-star"))
	assert.Equal(t, 2, strings.Count(out, "far fa-star"))
}
