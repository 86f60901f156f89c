package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the exposition output contains a series matching name,
// a partial label pattern and value. Extra labels added by the exporter are tolerated.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "clenv")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)
	assert.NotPanics(t, func() {
		noOpMetrics.RecordOperation(context.Background(), "vault", "entry_store", "success")
		noOpMetrics.RecordDuration(context.Background(), "vault", "entry_store", time.Millisecond, "error")
	})
}

func TestBusinessMetrics_Textfile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "collector", "clenv.prom")

	provider, err := NewProvider(path)
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "clenv")
	require.NoError(t, err)

	bm.RecordOperation(ctx, "vault", "entry_store", "success")
	bm.RecordOperation(ctx, "vault", "entry_store", "success")
	bm.RecordOperation(ctx, "vault", "access_grant", "error")
	bm.RecordDuration(ctx, "vault", "entry_store", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "vault", "entry_store", 70*time.Millisecond, "success")

	require.NoError(t, provider.Shutdown(ctx))

	data, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	output := string(data)

	assertMetricLine(t, output,
		`clenv_operations_total`,
		`domain="vault".*operation="entry_store".*status="success"`,
		`2`,
	)
	assertMetricLine(t, output,
		`clenv_operations_total`,
		`domain="vault".*operation="access_grant".*status="error"`,
		`1`,
	)
	assertMetricLine(t, output,
		`clenv_operation_duration_seconds_count`,
		`domain="vault".*operation="entry_store".*status="success"`,
		`2`,
	)
}
