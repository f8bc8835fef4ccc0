package zap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog/mock"
	euzap "github.com/timarques/eucatalog/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestLoggingFetcher_FetchText(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		logger, logs := observed(zapcore.DebugLevel)
		inner := &mock.Fetcher{
			FetchTextFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := euzap.NewLoggingFetcher(inner, logger)
		html, err := fetcher.FetchText(context.Background(), "https://european-alternatives.eu/categories")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "fetch", entry.Message)
		fields := entry.ContextMap()
		assert.Equal(t, "https://european-alternatives.eu/categories", fields["url"])
		assert.EqualValues(t, 20, fields["bytes"])
		assert.Contains(t, fields, "duration")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, logs := observed(zapcore.DebugLevel)
		inner := &mock.Fetcher{
			FetchTextFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := euzap.NewLoggingFetcher(inner, logger)
		_, err := fetcher.FetchText(context.Background(), "https://european-alternatives.eu/categories")

		require.Error(t, err)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "network error", logs.All()[0].ContextMap()["error"])
	})

	t.Run("silent above debug level", func(t *testing.T) {
		t.Parallel()

		logger, logs := observed(zapcore.InfoLevel)
		inner := &mock.Fetcher{
			FetchTextFn: func(ctx context.Context, url string) (string, error) {
				return "ok", nil
			},
		}

		_, err := euzap.NewLoggingFetcher(inner, logger).FetchText(context.Background(), "https://x.test")
		require.NoError(t, err)
		assert.Zero(t, logs.Len())
	})
}

func TestLoggingFetcher_FetchBytes(t *testing.T) {
	t.Parallel()

	logger, logs := observed(zapcore.DebugLevel)
	inner := &mock.Fetcher{
		FetchBytesFn: func(ctx context.Context, url string) ([]byte, error) {
			return []byte("<svg/>"), nil
		},
	}

	data, err := euzap.NewLoggingFetcher(inner, logger).FetchBytes(context.Background(), "https://cdn.test/a.svg")

	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), data)
	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, 6, logs.All()[0].ContextMap()["bytes"])
}
