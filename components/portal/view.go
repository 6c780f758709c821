package portal

import (
	"context"
	"fmt"

	"github.com/dentalexperts/go-portal/pkg/logging"
)

// ResolveMode derives the exclusive view mode from a session. Pure: the
// same session always yields the same mode.
func ResolveMode(session Session) ViewMode {
	switch session.Role {
	case RoleAdmin:
		return ModeAdmin
	case RoleUser:
		return ModeUser
	default:
		return ModeGuest
	}
}

// ResolverOptions wires the view resolver collaborators.
type ResolverOptions struct {
	Sessions *SessionStore
	Host     PanelHost
	Manifest *PanelManifestDocument
	Loaders  map[ViewMode]DataLoader
	Logger   *logging.Logger
}

// Resolver maps persisted session state to exactly one visible panel set.
// Applying a mode hides every other panel before showing its own, updates
// navigation indicators, and fires the mode's data-load sequence once.
type Resolver struct {
	sessions *SessionStore
	host     PanelHost
	manifest *PanelManifestDocument
	loaders  map[ViewMode]DataLoader
	logger   *logging.Logger
}

// NewResolver builds a resolver with safe defaults for nil collaborators.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(nil)
	}
	if opts.Host == nil {
		opts.Host = noopPanelHost{}
	}
	if opts.Manifest == nil {
		opts.Manifest = DefaultPanelManifest()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Resolver{
		sessions: opts.Sessions,
		host:     opts.Host,
		manifest: opts.Manifest,
		loaders:  opts.Loaders,
		logger:   opts.Logger.With("component", "view-resolver"),
	}
}

// Resolve reads the session store once and returns the derived mode
// without touching the host.
func (r *Resolver) Resolve(ctx context.Context) ViewMode {
	return ResolveMode(r.sessions.Get(ctx))
}

// Apply resolves the mode and drives the host to it. A panic anywhere in
// panel application falls back to the Guest view instead of leaving the
// page blank. If a mode's required panels are absent from the host the
// resolver no-ops and reports the resolved mode unchanged.
func (r *Resolver) Apply(ctx context.Context) (mode ViewMode, err error) {
	session := r.sessions.Get(ctx)
	mode = ResolveMode(session)

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("view apply panicked, falling back to guest", "panic", fmt.Sprint(rec))
			mode = ModeGuest
			err = r.applyMode(ctx, ModeGuest, GuestSession())
		}
	}()

	if !r.hostHasRequiredPanels(mode) {
		r.logger.Warn("required panels missing, leaving view untouched", "mode", string(mode))
		return mode, nil
	}
	return mode, r.applyMode(ctx, mode, session)
}

func (r *Resolver) hostHasRequiredPanels(mode ViewMode) bool {
	for _, panel := range r.manifest.PanelsFor(mode) {
		if panel.Required && !r.host.HasPanel(panel.Code) {
			return false
		}
	}
	return true
}

func (r *Resolver) applyMode(ctx context.Context, mode ViewMode, session Session) error {
	active := r.manifest.PanelsFor(mode)
	inSet := make(map[string]bool, len(active))
	for _, panel := range active {
		inSet[panel.Code] = true
	}

	// Hide first so no stale panel survives the switch.
	for _, code := range r.manifest.AllCodes() {
		if !inSet[code] && r.host.HasPanel(code) {
			r.host.HidePanel(code)
		}
	}
	nav := ""
	for _, panel := range active {
		if r.host.HasPanel(panel.Code) {
			r.host.ShowPanel(panel.Code)
		}
		if panel.Nav != "" {
			nav = panel.Nav
		}
	}
	r.host.SetNavActive(nav)

	if mode == ModeUser {
		r.host.SetGreeting(fmt.Sprintf("Welcome, %s 👋", session.Name))
	} else {
		r.host.SetGreeting("")
	}

	if loader, ok := r.loaders[mode]; ok && loader != nil {
		if err := loader(ctx, session); err != nil {
			return fmt.Errorf("portal: %s data load: %w", mode, err)
		}
	}
	return nil
}

// RefreshGreeting re-renders the greeting text from the current session
// without reapplying panels or refiring data loaders.
func (r *Resolver) RefreshGreeting(ctx context.Context) {
	session := r.sessions.Get(ctx)
	if ResolveMode(session) == ModeUser {
		r.host.SetGreeting(fmt.Sprintf("Welcome, %s 👋", session.Name))
	}
}

type noopPanelHost struct{}

func (noopPanelHost) HasPanel(string) bool { return false }
func (noopPanelHost) ShowPanel(string)     {}
func (noopPanelHost) HidePanel(string)     {}
func (noopPanelHost) SetNavActive(string)  {}
func (noopPanelHost) SetGreeting(string)   {}
