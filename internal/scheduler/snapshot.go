package scheduler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"fleet-scheduler/internal/domain"
)

// Snapshot is the flat, serializable form of the store state.
type Snapshot struct {
	Version          int64                    `json:"version"`
	SavedAt          time.Time                `json:"saved_at"`
	Vehicles         []domain.Vehicle         `json:"vehicles"`
	Trailers         []domain.Trailer         `json:"trailers"`
	Shipments        []domain.Shipment        `json:"shipments"`
	UnassignedOrders []domain.UnassignedOrder `json:"unassigned_orders"`
}

// EncodeSnapshot serializes a snapshot as JSON. Timestamps are RFC 3339 with
// zone and volumes are decimal strings, so a reload reconstructs exact values.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot v%d: %w", s.Version, err)
	}
	return b, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
