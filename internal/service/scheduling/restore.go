package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/logx"
)

// Seed is the initial fleet and order book applied to an empty deployment.
type Seed struct {
	Trailers         []domain.Trailer         `json:"trailers"`
	Vehicles         []domain.Vehicle         `json:"vehicles"`
	UnassignedOrders []domain.UnassignedOrder `json:"unassigned_orders"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return seed, nil
}

// Restore loads the latest persisted snapshot into the store. When nothing
// was saved yet and a seed file is configured, the seed is applied instead.
func (s *Service) Restore(ctx context.Context) error {
	if s.snapshots != nil {
		loadCtx, cancel := s.withTimeout(ctx)
		snap, found, err := s.snapshots.LoadLatest(loadCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("load latest snapshot: %w", err)
		}
		if found {
			if err := s.store.Restore(snap); err != nil {
				return fmt.Errorf("restore snapshot v%d: %w", snap.Version, err)
			}
			s.saveMu.Lock()
			s.savedVersion = snap.Version
			s.saveMu.Unlock()

			s.logger.Info("schedule restored",
				logx.String("event", "schedule_restored"),
				logx.Int64("version", snap.Version),
				logx.Time("saved_at", snap.SavedAt),
				logx.Int("shipments", len(snap.Shipments)),
				logx.Int("unassigned", len(snap.UnassignedOrders)),
			)
			return nil
		}
	}

	if s.seedFile == "" {
		s.logger.Info("starting with an empty schedule")
		return nil
	}
	seed, err := LoadSeed(s.seedFile)
	if err != nil {
		return err
	}
	if err := s.ApplySeed(ctx, seed); err != nil {
		return err
	}
	s.logger.Info("schedule seeded",
		logx.String("event", "schedule_seeded"),
		logx.String("file", s.seedFile),
		logx.Int("vehicles", len(seed.Vehicles)),
		logx.Int("trailers", len(seed.Trailers)),
		logx.Int("orders", len(seed.UnassignedOrders)),
	)
	return nil
}

// ApplySeed upserts every trailer and vehicle and adds every order. All
// entries are attempted; the returned error joins the individual failures.
func (s *Service) ApplySeed(ctx context.Context, seed Seed) error {
	var errs []error
	for _, t := range seed.Trailers {
		if err := s.store.UpsertTrailer(t); err != nil {
			errs = append(errs, fmt.Errorf("trailer %s: %w", t.ID, err))
		}
	}
	for _, v := range seed.Vehicles {
		if err := s.store.UpsertVehicle(v); err != nil {
			errs = append(errs, fmt.Errorf("vehicle %s: %w", v.ID, err))
		}
	}
	for _, o := range seed.UnassignedOrders {
		if _, err := s.store.AddOrder(o); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", o.OrderRef, err))
		}
	}
	s.persist(ctx)
	return errors.Join(errs...)
}
