package portal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: custom-portal
panels:
  - name: Booking Widget
    modes: [user]
    nav: "#appointment"
  - code: kiosk-banner
    name: Kiosk Banner
    modes: [guest, user]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Panels, 2)

	assert.Equal(t, "booking-widget", doc.Panels[0].Code, "code derived from name")
	assert.Equal(t, "#appointment", doc.Panels[0].Nav)
	assert.Equal(t, "kiosk-banner", doc.Panels[1].Code)
	assert.Equal(t, []ViewMode{ModeGuest, ModeUser}, doc.Panels[1].Modes)
}

func TestDecodeManifestRejectsUnknownMode(t *testing.T) {
	const payload = `
panels:
  - name: Broken
    modes: [superuser]
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestDecodeManifestRejectsPanelWithoutModes(t *testing.T) {
	const payload = `
panels:
  - name: Floating
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDefaultManifestModesAreExclusiveEnough(t *testing.T) {
	doc := DefaultPanelManifest()

	guest := doc.PanelsFor(ModeGuest)
	admin := doc.PanelsFor(ModeAdmin)

	// The auth panel belongs to guests only; the dashboard to admins only.
	for _, panel := range admin {
		assert.NotEqual(t, "auth-section", panel.Code)
	}
	for _, panel := range guest {
		assert.NotEqual(t, "admin-dashboard", panel.Code)
	}

	var required []string
	for _, panel := range admin {
		if panel.Required {
			required = append(required, panel.Code)
		}
	}
	assert.Equal(t, []string{"admin-dashboard"}, required)
}

func TestPanelsForPreservesManifestOrder(t *testing.T) {
	doc := DefaultPanelManifest()
	user := doc.PanelsFor(ModeUser)
	require.NotEmpty(t, user)
	assert.Equal(t, "header", user[0].Code)
}
