// Package rest serves the document API over HTTP using chi.
package rest

import (
	"errors"

	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// ErrMissingService is returned when a required driving port is nil.
var ErrMissingService = errors.New("rest: required service is missing")

// Ports aggregates the driving ports the API exposes.
type Ports struct {
	Ingest      driving.IngestService
	Query       driving.QueryService
	Aggregation driving.AggregationService
	Document    driving.DocumentService
	Health      driving.HealthService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p == nil:
		return ErrMissingService
	case p.Ingest == nil, p.Query == nil, p.Aggregation == nil, p.Document == nil, p.Health == nil:
		return ErrMissingService
	}
	return nil
}
