package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/logger"
	"github.com/spigell/jobassist/internal/progress"
	"go.uber.org/zap"
)

// statusInvalidArgument is what the secondary API answers for a bad key.
const statusInvalidArgument = "INVALID_ARGUMENT"

// Pinger is a provider that can answer a cheap health request.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) (ai.Probe, error)
}

// Availability is fixed by the health check and read by the stages.
type Availability struct {
	// Secondary reports whether the secondary provider should be tried first.
	Secondary bool
	// Reason explains why the secondary provider was put aside.
	Reason string
}

// HealthError is a health check failure that stops the run.
type HealthError struct {
	Provider   string
	StatusCode int
	Status     string
	Reason     string
	Err        error
}

func (e *HealthError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Reason)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *HealthError) Unwrap() error {
	return e.Err
}

// CheckHealth pings both providers once. A primary that cannot serve is
// fatal; a secondary that only lacks capacity is marked unavailable.
func CheckHealth(ctx context.Context, primary, secondary Pinger, runner progress.Runner, log *zap.Logger) (Availability, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := checkPrimary(ctx, primary, runner, log); err != nil {
		return Availability{}, err
	}

	if secondary == nil {
		return Availability{Reason: "not configured"}, nil
	}

	return checkSecondary(ctx, secondary, runner, log)
}

func checkPrimary(ctx context.Context, primary Pinger, runner progress.Runner, log *zap.Logger) error {
	probe, err := progress.Do(runner, "Checking "+primary.Name()+"...", func() (ai.Probe, error) {
		return primary.Ping(ctx)
	})
	if err != nil {
		return &HealthError{Provider: primary.Name(), Reason: "unreachable", Err: err}
	}

	switch probe.StatusCode {
	case http.StatusOK:
		log.Info("provider is healthy", zap.String(logger.FieldProvider, primary.Name()))
	case http.StatusUnauthorized:
		return &HealthError{Provider: primary.Name(), StatusCode: probe.StatusCode, Status: probe.Status, Reason: "invalid API key"}
	case http.StatusTooManyRequests:
		return &HealthError{Provider: primary.Name(), StatusCode: probe.StatusCode, Status: probe.Status, Reason: "quota reached"}
	default:
		log.Warn("unexpected health status, continuing",
			zap.String(logger.FieldProvider, primary.Name()),
			zap.Int("status_code", probe.StatusCode),
			zap.String("message", probe.Message),
		)
	}

	return nil
}

func checkSecondary(ctx context.Context, secondary Pinger, runner progress.Runner, log *zap.Logger) (Availability, error) {
	probe, err := progress.Do(runner, "Checking "+secondary.Name()+"...", func() (ai.Probe, error) {
		return secondary.Ping(ctx)
	})
	if err != nil {
		return Availability{}, &HealthError{Provider: secondary.Name(), Reason: "unreachable", Err: err}
	}

	var reason string
	switch {
	case probe.StatusCode == http.StatusOK:
		log.Info("provider is healthy", zap.String(logger.FieldProvider, secondary.Name()))
		return Availability{Secondary: true}, nil
	case probe.StatusCode == http.StatusUnauthorized || probe.Status == statusInvalidArgument:
		return Availability{}, &HealthError{Provider: secondary.Name(), StatusCode: probe.StatusCode, Status: probe.Status, Reason: "invalid API key"}
	case probe.StatusCode == http.StatusTooManyRequests:
		reason = "quota reached"
	case probe.StatusCode == http.StatusServiceUnavailable:
		reason = "overloaded"
	default:
		reason = fmt.Sprintf("unexpected status %d", probe.StatusCode)
	}

	log.Warn("provider unavailable, the primary provider will be used",
		zap.String(logger.FieldProvider, secondary.Name()),
		zap.String("reason", reason),
		zap.Int("status_code", probe.StatusCode),
	)

	return Availability{Reason: reason}, nil
}
