package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanelHost struct {
	panels   map[string]bool // present -> visible
	nav      string
	greeting string
	ops      []string
}

func newFakePanelHost(codes ...string) *fakePanelHost {
	h := &fakePanelHost{panels: map[string]bool{}}
	for _, code := range codes {
		h.panels[code] = false
	}
	return h
}

func (h *fakePanelHost) HasPanel(code string) bool {
	_, ok := h.panels[code]
	return ok
}

func (h *fakePanelHost) ShowPanel(code string) {
	h.panels[code] = true
	h.ops = append(h.ops, "show:"+code)
}

func (h *fakePanelHost) HidePanel(code string) {
	h.panels[code] = false
	h.ops = append(h.ops, "hide:"+code)
}

func (h *fakePanelHost) SetNavActive(target string) { h.nav = target }
func (h *fakePanelHost) SetGreeting(text string)    { h.greeting = text }

func (h *fakePanelHost) visible() []string {
	var out []string
	for _, panel := range DefaultPanelManifest().Panels {
		if h.panels[panel.Code] {
			out = append(out, panel.Code)
		}
	}
	return out
}

func allPanelCodes() []string {
	return DefaultPanelManifest().AllCodes()
}

func TestResolveModeIsPure(t *testing.T) {
	assert.Equal(t, ModeGuest, ResolveMode(GuestSession()))
	assert.Equal(t, ModeUser, ResolveMode(Session{Role: RoleUser, Name: "Ana"}))
	assert.Equal(t, ModeAdmin, ResolveMode(Session{Role: RoleAdmin, AdminUsername: "root"}))
}

func TestApplyGuestShowsOnlyGuestPanels(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	resolver := NewResolver(ResolverOptions{Host: host})

	mode, err := resolver.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeGuest, mode)
	assert.ElementsMatch(t, []string{"auth-section", "header"}, host.visible())
	assert.Empty(t, host.greeting)
}

func TestApplyUserHidesGuestPanelsAndGreets(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{
		Role: RoleUser, Name: "Ana", Email: "ana@example.com",
	}))
	resolver := NewResolver(ResolverOptions{Sessions: sessions, Host: host})

	mode, err := resolver.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeUser, mode)
	assert.ElementsMatch(t,
		[]string{"header", "main-site", "landing-page-content", "main-footer", "user-dropdown"},
		host.visible())
	assert.Equal(t, "#home", host.nav)
	assert.Equal(t, "Welcome, Ana 👋", host.greeting)
}

func TestApplyHidesBeforeShowing(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{Role: RoleUser, Name: "Ana"}))
	resolver := NewResolver(ResolverOptions{Sessions: sessions, Host: host})

	_, err := resolver.Apply(context.Background())
	require.NoError(t, err)

	firstShow := -1
	lastHide := -1
	for i, op := range host.ops {
		if firstShow == -1 && op[:5] == "show:" {
			firstShow = i
		}
		if op[:5] == "hide:" {
			lastHide = i
		}
	}
	require.GreaterOrEqual(t, firstShow, 0)
	assert.Less(t, lastHide, firstShow, "every hide must precede the first show")
}

func TestApplyFiresDataLoaderExactlyOnce(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{Role: RoleUser, Name: "Ana"}))

	calls := 0
	resolver := NewResolver(ResolverOptions{
		Sessions: sessions,
		Host:     host,
		Loaders: map[ViewMode]DataLoader{
			ModeUser: func(ctx context.Context, session Session) error {
				calls++
				assert.Equal(t, "Ana", session.Name)
				return nil
			},
		},
	})

	_, err := resolver.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestApplyAdminWithMissingRequiredPanelIsNoOp(t *testing.T) {
	// Host without the admin dashboard container.
	host := newFakePanelHost("auth-section", "header", "main-site")
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{Role: RoleAdmin, AdminUsername: "root"}))

	loaderCalls := 0
	resolver := NewResolver(ResolverOptions{
		Sessions: sessions,
		Host:     host,
		Loaders: map[ViewMode]DataLoader{
			ModeAdmin: func(context.Context, Session) error {
				loaderCalls++
				return nil
			},
		},
	})

	mode, err := resolver.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeAdmin, mode)
	assert.Empty(t, host.ops, "host untouched when required panels are missing")
	assert.Zero(t, loaderCalls)
}

func TestApplyRecoversPanicWithGuestView(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{Role: RoleUser, Name: "Ana"}))

	resolver := NewResolver(ResolverOptions{
		Sessions: sessions,
		Host:     host,
		Loaders: map[ViewMode]DataLoader{
			ModeUser: func(context.Context, Session) error { panic("boom") },
		},
	})

	mode, err := resolver.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeGuest, mode)
	assert.ElementsMatch(t, []string{"auth-section", "header"}, host.visible())
}

func TestApplyLoaderErrorKeepsView(t *testing.T) {
	host := newFakePanelHost(allPanelCodes()...)
	sessions := NewSessionStore(nil)
	require.NoError(t, sessions.Set(context.Background(), Session{Role: RoleUser, Name: "Ana"}))

	wantErr := errors.New("backend down")
	resolver := NewResolver(ResolverOptions{
		Sessions: sessions,
		Host:     host,
		Loaders: map[ViewMode]DataLoader{
			ModeUser: func(context.Context, Session) error { return wantErr },
		},
	})

	mode, err := resolver.Apply(context.Background())
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, ModeUser, mode)
	assert.Contains(t, host.visible(), "main-site")
}
