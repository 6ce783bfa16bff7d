package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Vehicle represents a truck or van that can carry shipments.
// TrailerID is a lookup reference only; an empty value means no trailer.
type Vehicle struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       VehicleStatus `json:"status"`
	TrailerID    string        `json:"trailer_id,omitempty"`
	Availability Interval      `json:"availability"`
	DriverName   string        `json:"driver_name,omitempty"`
}

// HasTrailer reports whether a trailer is attached.
func (v Vehicle) HasTrailer() bool {
	return v.TrailerID != ""
}

// Active reports whether the vehicle is operational.
func (v Vehicle) Active() bool {
	return v.Status == VehicleActive
}

// Validate checks the vehicle invariants.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vehicle id is empty")
	}
	if !v.Status.Valid() {
		return fmt.Errorf("vehicle %s: unknown status %q", v.ID, v.Status)
	}
	if !v.Availability.Valid() {
		return fmt.Errorf("vehicle %s: availability start must be before end", v.ID)
	}
	return nil
}
