package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsdesk/mock"
	ndslog "github.com/fwojciec/newsdesk/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes but not text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "機密回覆", nil
			},
		}

		text, err := ndslog.NewLoggingGenerator(inner, logger).Generate(context.Background(), "秘密提示")

		require.NoError(t, err)
		assert.Equal(t, "機密回覆", text)
		output := buf.String()
		assert.Contains(t, output, "generate")
		assert.Contains(t, output, "prompt_chars=4")
		assert.Contains(t, output, "response_chars=4")
		assert.NotContains(t, output, "秘密提示")
		assert.NotContains(t, output, "機密回覆")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		_, err := ndslog.NewLoggingGenerator(inner, logger).Generate(context.Background(), "p")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}
