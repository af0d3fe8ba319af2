package engine

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := New(WithLogger(logger))

	_, _, err := e.Join(context.Background(), people(), 0.5)
	require.NoError(t, err)

	logOutput := buf.String()
	require.Contains(t, logOutput, "Join started")
	require.Contains(t, logOutput, "Join completed")
	require.Contains(t, logOutput, `"rowCount":4`)
	require.Contains(t, logOutput, `"matches":1`)
}
