// internal/geocode/geocoder.go

// Package geocode turns free-text addresses into ranked candidates carrying
// jurisdiction identifiers. Each jurisdiction publishes its own geocoder with
// its own response shape; this package hides both behind one interface.
package geocode

import (
	"context"
)

// Candidate is one ranked geocoder match.
type Candidate struct {
	HouseNumber string
	Street      string
	Subdivision string
	BuildingID  string
	ParcelID    string
	Label       string
}

// Geocoder searches a jurisdiction's geocoding service. Candidates come back
// in the service's ranking order. An unreachable service is an error; a
// reachable service with no matches is an empty slice.
type Geocoder interface {
	Search(ctx context.Context, text string, maxResults int) ([]Candidate, error)
}
