package pipeline

import (
	"context"
	"errors"

	"github.com/spigell/jobassist/internal/ai"
	"go.uber.org/zap"
)

// Call runs one stage attempt against a provider.
type Call[T any] func(ctx context.Context, provider ai.Adapter) (T, error)

// Fallback tries the secondary provider when it is available and falls back
// to the primary on any failure. Every provider is tried at most once. The
// returned name is the provider whose answer (or error) is returned.
func Fallback[T any](ctx context.Context, log *zap.Logger, avail Availability, secondary, primary ai.Adapter, call Call[T]) (T, string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if avail.Secondary && secondary != nil {
		out, err := call(ctx, secondary)
		if err == nil {
			return out, secondary.Name(), nil
		}

		if errors.Is(err, ai.ErrUnavailable) {
			log.Info("secondary provider unavailable, falling back",
				zap.String("from", secondary.Name()),
				zap.String("to", primary.Name()),
				zap.Error(err),
			)
		} else {
			log.Warn("secondary provider failed, falling back",
				zap.String("from", secondary.Name()),
				zap.String("to", primary.Name()),
				zap.Error(err),
			)
		}
	}

	out, err := call(ctx, primary)
	return out, primary.Name(), err
}
