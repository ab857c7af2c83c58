package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckHealthPrimary(t *testing.T) {
	tests := []struct {
		name   string
		probe  ai.Probe
		err    error
		reason string
	}{
		{name: "invalid key", probe: ai.Probe{StatusCode: http.StatusUnauthorized}, reason: "invalid API key"},
		{name: "quota", probe: ai.Probe{StatusCode: http.StatusTooManyRequests}, reason: "quota reached"},
		{name: "transport", err: errors.New("dial tcp: connection refused"), reason: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakePinger{name: "perplexity", probe: tt.probe, err: tt.err}
			secondary := &fakePinger{name: "gemini", probe: ai.Probe{StatusCode: http.StatusOK}}

			_, err := CheckHealth(context.Background(), primary, secondary, nil, nil)

			var healthErr *HealthError
			require.ErrorAs(t, err, &healthErr)
			assert.Equal(t, "perplexity", healthErr.Provider)
			assert.Equal(t, tt.reason, healthErr.Reason)
			assert.Zero(t, secondary.calls, "secondary must not be checked after a fatal primary")
		})
	}
}

func TestCheckHealthPrimaryUnexpectedStatusContinues(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	primary := &fakePinger{name: "perplexity", probe: ai.Probe{StatusCode: http.StatusInternalServerError}}
	secondary := &fakePinger{name: "gemini", probe: ai.Probe{StatusCode: http.StatusOK}}

	avail, err := CheckHealth(context.Background(), primary, secondary, nil, zap.New(core))
	require.NoError(t, err)
	assert.True(t, avail.Secondary)
	assert.Equal(t, 1, logs.FilterMessage("unexpected health status, continuing").Len())
}

func TestCheckHealthSecondary(t *testing.T) {
	tests := []struct {
		name      string
		probe     ai.Probe
		err       error
		fatal     bool
		available bool
		reason    string
	}{
		{name: "healthy", probe: ai.Probe{StatusCode: http.StatusOK}, available: true},
		{name: "unauthorized", probe: ai.Probe{StatusCode: http.StatusUnauthorized}, fatal: true},
		{name: "invalid argument", probe: ai.Probe{StatusCode: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}, fatal: true},
		{name: "quota", probe: ai.Probe{StatusCode: http.StatusTooManyRequests}, reason: "quota reached"},
		{name: "overloaded", probe: ai.Probe{StatusCode: http.StatusServiceUnavailable}, reason: "overloaded"},
		{name: "other status", probe: ai.Probe{StatusCode: http.StatusInternalServerError}, reason: "unexpected status 500"},
		{name: "transport", err: errors.New("timeout"), fatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakePinger{name: "perplexity", probe: ai.Probe{StatusCode: http.StatusOK}}
			secondary := &fakePinger{name: "gemini", probe: tt.probe, err: tt.err}
			runner := &countingRunner{}

			avail, err := CheckHealth(context.Background(), primary, secondary, runner, nil)
			if tt.fatal {
				var healthErr *HealthError
				require.ErrorAs(t, err, &healthErr)
				assert.Equal(t, "gemini", healthErr.Provider)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.available, avail.Secondary)
			assert.Equal(t, tt.reason, avail.Reason)
			assert.Len(t, runner.messages, 2)
		})
	}
}

func TestHealthErrorMessage(t *testing.T) {
	err := &HealthError{Provider: "perplexity", StatusCode: 401, Reason: "invalid API key"}
	assert.Equal(t, "perplexity: invalid API key (status 401)", err.Error())

	cause := errors.New("refused")
	err = &HealthError{Provider: "gemini", Reason: "unreachable", Err: cause}
	assert.Equal(t, "gemini: unreachable: refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
