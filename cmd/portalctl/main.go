package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	portal "github.com/dentalexperts/go-portal/components/portal"
)

type cli struct {
	Panel panelCmd `cmd:"" help:"Add a panel definition to a portal panel manifest."`
	Check checkCmd `cmd:"" help:"Validate a panel manifest and print the per-mode composition."`
}

type panelCmd struct {
	Name         string   `required:"" help:"Display name for the panel."`
	Code         string   `help:"Panel element id (defaults to the kebab-cased name)."`
	Mode         []string `required:"" help:"View modes that compose the panel (guest, user, admin); repeat per mode."`
	Nav          string   `help:"Nav link to highlight while the panel is visible (e.g. #home)."`
	Required     bool     `help:"Mark the panel required so a missing host element aborts the view switch."`
	ManifestPath string   `required:"" type:"path" help:"Path to the panel manifest YAML file to update."`
	Overwrite    bool     `help:"Replace an existing panel entry with the same code."`
}

type checkCmd struct {
	ManifestPath string `arg:"" type:"path" help:"Path to the panel manifest YAML file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Panel manifest utility for go-portal page composition."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *panelCmd) Run(_ context.Context) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("portalctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	code := cmd.Code
	if code == "" {
		code = strcase.ToKebab(cmd.Name)
	}
	modes, err := parseModes(cmd.Mode)
	if err != nil {
		return err
	}

	entry := portal.PanelDefinition{
		Code:     code,
		Name:     cmd.Name,
		Modes:    modes,
		Nav:      cmd.Nav,
		Required: cmd.Required,
	}

	replaced := false
	for idx := range doc.Panels {
		if doc.Panels[idx].Code == code {
			if !cmd.Overwrite {
				return fmt.Errorf("portalctl: manifest already defines panel %s (use --overwrite to replace)", code)
			}
			doc.Panels[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Panels = append(doc.Panels, entry)
	}

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", code, manifestPath)
	return nil
}

func (cmd *checkCmd) Run(_ context.Context) error {
	doc, err := portal.ReadManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s: %d panels\n", cmd.ManifestPath, len(doc.Panels))
	for _, mode := range []portal.ViewMode{portal.ModeGuest, portal.ModeUser, portal.ModeAdmin} {
		var codes []string
		for _, panel := range doc.PanelsFor(mode) {
			codes = append(codes, panel.Code)
		}
		fmt.Fprintf(os.Stdout, "  %s: %s\n", mode, strings.Join(codes, ", "))
	}
	return nil
}

func parseModes(raw []string) ([]portal.ViewMode, error) {
	modes := make([]portal.ViewMode, 0, len(raw))
	for _, m := range raw {
		switch mode := portal.ViewMode(strings.ToLower(strings.TrimSpace(m))); mode {
		case portal.ModeGuest, portal.ModeUser, portal.ModeAdmin:
			modes = append(modes, mode)
		default:
			return nil, fmt.Errorf("portalctl: unknown mode %q (want guest, user, or admin)", m)
		}
	}
	return modes, nil
}

func loadOrInitManifest(path string) (*portal.PanelManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &portal.PanelManifestDocument{
				Version: portal.ManifestVersion,
				Panels:  []portal.PanelDefinition{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("portalctl: stat manifest: %w", err)
	}
	return portal.ReadManifest(path)
}

func writeManifest(path string, doc *portal.PanelManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("portalctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("portalctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("portalctl: write manifest: %w", err)
	}
	return nil
}
