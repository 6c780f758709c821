package portal

import (
	"fmt"
	"io"
	"os"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PanelManifestDocument models a YAML manifest describing the page panels
// each view mode composes. Applications ship their own manifest or rely on
// the embedded default.
type PanelManifestDocument struct {
	Version string            `json:"version" yaml:"version"`
	Name    string            `json:"name,omitempty" yaml:"name,omitempty"`
	Panels  []PanelDefinition `json:"panels" yaml:"panels"`
	Source  string            `json:"-" yaml:"-"`
}

// PanelDefinition describes one named panel and the modes it belongs to.
type PanelDefinition struct {
	Code     string     `json:"code,omitempty" yaml:"code,omitempty"`
	Name     string     `json:"name" yaml:"name"`
	Modes    []ViewMode `json:"modes" yaml:"modes"`
	Nav      string     `json:"nav,omitempty" yaml:"nav,omitempty"`
	Required bool       `json:"required,omitempty" yaml:"required,omitempty"`
}

// DecodeManifest parses a manifest document from YAML.
func DecodeManifest(r io.Reader) (*PanelManifestDocument, error) {
	var doc PanelManifestDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("portal: decode panel manifest: %w", err)
	}
	if err := doc.normalize(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*PanelManifestDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("portal: open panel manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}

func (d *PanelManifestDocument) normalize() error {
	if d.Version == "" {
		d.Version = manifestVersionV1
	}
	if d.Version != manifestVersionV1 {
		return fmt.Errorf("portal: unsupported panel manifest version %q", d.Version)
	}
	for i := range d.Panels {
		panel := &d.Panels[i]
		if panel.Code == "" {
			panel.Code = strcase.ToKebab(panel.Name)
		}
		if panel.Code == "" {
			return fmt.Errorf("portal: panel %d needs a code or name", i)
		}
		if len(panel.Modes) == 0 {
			return fmt.Errorf("portal: panel %s declares no modes", panel.Code)
		}
		for _, mode := range panel.Modes {
			switch mode {
			case ModeGuest, ModeUser, ModeAdmin:
			default:
				return fmt.Errorf("portal: panel %s has unknown mode %q", panel.Code, mode)
			}
		}
	}
	return nil
}

// PanelsFor returns the panel set composed for a mode, in manifest order.
func (d *PanelManifestDocument) PanelsFor(mode ViewMode) []PanelDefinition {
	var panels []PanelDefinition
	for _, panel := range d.Panels {
		for _, m := range panel.Modes {
			if m == mode {
				panels = append(panels, panel)
				break
			}
		}
	}
	return panels
}

// AllCodes lists every panel code the manifest knows, in order.
func (d *PanelManifestDocument) AllCodes() []string {
	codes := make([]string, 0, len(d.Panels))
	for _, panel := range d.Panels {
		codes = append(codes, panel.Code)
	}
	return codes
}

// DefaultPanelManifest composes the stock clinic page: auth panel for
// guests, landing page plus dropdown for users, the dashboard shell for
// admins.
func DefaultPanelManifest() *PanelManifestDocument {
	return &PanelManifestDocument{
		Version: manifestVersionV1,
		Name:    "clinic-portal",
		Panels: []PanelDefinition{
			{Code: "auth-section", Name: "Login / Signup", Modes: []ViewMode{ModeGuest}},
			{Code: "header", Name: "Site Header", Modes: []ViewMode{ModeGuest, ModeUser}},
			{Code: "main-site", Name: "Main Site Shell", Modes: []ViewMode{ModeUser, ModeAdmin}},
			{Code: "landing-page-content", Name: "Landing Page", Modes: []ViewMode{ModeUser}, Nav: "#home"},
			{Code: "main-footer", Name: "Footer", Modes: []ViewMode{ModeUser}},
			{Code: "user-dropdown", Name: "User Menu", Modes: []ViewMode{ModeUser}},
			{Code: "admin-dashboard", Name: "Admin Dashboard", Modes: []ViewMode{ModeAdmin}, Required: true},
		},
	}
}
