package application

import (
	"fmt"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
)

// Dashboard renders store snapshots onto a display.
type Dashboard struct {
	store    *Store
	renderer ports.Renderer
	display  ports.Display
}

func NewDashboard(store *Store, renderer ports.Renderer, display ports.Display) *Dashboard {
	return &Dashboard{store: store, renderer: renderer, display: display}
}

func (d *Dashboard) RenderAll() error {
	return d.RenderSurfaces(domain.AllSurfaces...)
}

// RenderSurfaces rebuilds each surface from the current snapshot, replacing its content.
func (d *Dashboard) RenderSurfaces(surfaces ...domain.Surface) error {
	snapshot, ok := d.store.Current()
	if !ok {
		return domain.ErrNotLoaded
	}

	for _, surface := range surfaces {
		content, err := d.renderer.Render(surface, snapshot)
		if err != nil {
			return fmt.Errorf("render %s: %w", surface, err)
		}
		if err := d.display.Replace(surface, content); err != nil {
			return fmt.Errorf("replace %s: %w", surface, err)
		}
	}

	return nil
}

// Apply turns a mutation outcome into display updates.
func (d *Dashboard) Apply(outcome Outcome) error {
	if outcome.Skipped {
		return nil
	}

	switch {
	case outcome.Refreshed:
		if err := d.RenderAll(); err != nil {
			return err
		}
	case outcome.ClearInput:
		if err := d.RenderSurfaces(domain.SurfaceChat); err != nil {
			return err
		}
	}

	if outcome.Message != "" {
		if err := d.display.Notify(outcome.Message); err != nil {
			return fmt.Errorf("notify: %w", err)
		}
	}
	if outcome.Navigate != "" {
		if err := d.display.Focus(outcome.Navigate); err != nil {
			return fmt.Errorf("focus %s: %w", outcome.Navigate, err)
		}
	}

	return nil
}
