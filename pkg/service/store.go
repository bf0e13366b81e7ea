// Package service joins repositories into the views used by the scheduler and the server
package service

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/dossier/pkg/config"
	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/repository"
)

// Store provides unified access to dossier, delivery and style repositories
type Store struct {
	*repository.DossierRepository
	*repository.DeliveryRepository
	*repository.StyleRepository
}

// NewStore creates a store over the shared repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{DossierRepository: repos.Dossier, DeliveryRepository: repos.Delivery, StyleRepository: repos.Style}
}

// SyncConfig upserts styles and dossiers defined in the config file. Active dossiers missing
// from the config are deactivated, history of them is kept.
func (st *Store) SyncConfig(ctx context.Context, cfg *config.Config) error {
	for _, sc := range cfg.Styles {
		if err := st.UpsertStyle(ctx, domain.Style{Name: sc.Name, Instructions: sc.Instructions}); err != nil {
			return fmt.Errorf("style %q: %w", sc.Name, err)
		}
	}

	names := make(map[string]bool, len(cfg.Dossiers))
	for _, dc := range cfg.Dossiers {
		d := &domain.Dossier{
			Name:         dc.Name,
			Recipient:    dc.Recipient,
			Feeds:        dc.Feeds,
			MaxItems:     dc.MaxItems,
			Frequency:    domain.Frequency(dc.Frequency),
			DeliveryTime: dc.DeliveryTime,
			Timezone:     dc.Timezone,
			Style:        dc.Style,
			Language:     dc.Language,
			Instructions: dc.Instructions,
			Active:       !dc.Disabled,
		}
		if err := st.UpsertDossier(ctx, d); err != nil {
			return fmt.Errorf("dossier %q: %w", dc.Name, err)
		}
		names[dc.Name] = true
	}

	active, err := st.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active dossiers: %w", err)
	}
	for _, d := range active {
		if names[d.Name] {
			continue
		}
		if err := st.SetActive(ctx, d.ID, false); err != nil {
			return fmt.Errorf("deactivate dossier %q: %w", d.Name, err)
		}
		lgr.Printf("[INFO] dossier %q is not in config, deactivated", d.Name)
	}
	lgr.Printf("[INFO] config synced, %d dossiers, %d styles", len(cfg.Dossiers), len(cfg.Styles))
	return nil
}
