// Package ai holds the contracts shared by the model provider clients and the
// adaptation pipeline.
package ai

import (
	"context"
	"errors"
	"strconv"
)

// ErrUnavailable signals a recoverable provider failure: quota exhausted,
// overload, or a best-effort call that did not produce a result. Callers fall
// back to another provider instead of aborting.
var ErrUnavailable = errors.New("provider unavailable")

// AdaptRequest carries the inputs of the adapt stage.
type AdaptRequest struct {
	Resume       string
	JobOffer     string
	Analysis     string
	Instructions string
}

// Score is a relevance score in [0,100]. The zero value means the score is
// unavailable.
type Score struct {
	Value     int
	Available bool
}

// NewScore returns an available score clamped to [0,100].
func NewScore(v int) Score {
	return Score{Value: clamp(v), Available: true}
}

func (s Score) String() string {
	if !s.Available {
		return "unavailable"
	}
	return strconv.Itoa(s.Value) + "%"
}

// Analyzer extracts the key requirements of a job offer.
type Analyzer interface {
	Analyze(ctx context.Context, jobOffer string) (string, error)
}

// Adapter rewrites a résumé for a job offer and rates the result.
type Adapter interface {
	Name() string
	Adapt(ctx context.Context, req AdaptRequest) (string, error)
	Score(ctx context.Context, adaptedResume, jobOffer string) (Score, error)
}

// Probe is the outcome of a provider health request that reached the server.
type Probe struct {
	// StatusCode is the HTTP status returned by the provider.
	StatusCode int
	// Status is the provider specific status string, e.g. INVALID_ARGUMENT.
	Status  string
	Message string
}
