package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a metric matching
// name, a partial label pattern, and value. OTel scope labels may appear between labels.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "crypto", "message_encrypt", "success")
		noOp.RecordDuration(context.Background(), "crypto", "message_encrypt", time.Millisecond, "success")
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "crypto", "message_encrypt", "success")
	bm.RecordOperation(ctx, "crypto", "message_encrypt", "success")
	bm.RecordOperation(ctx, "crypto", "message_decrypt", "error")
	bm.RecordOperation(ctx, "chat", "message_send", "success")

	bm.RecordDuration(ctx, "crypto", "message_encrypt", 5*time.Millisecond, "success")
	bm.RecordDuration(ctx, "crypto", "message_encrypt", 7*time.Millisecond, "success")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	output := w.Body.String()

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="crypto".*operation="message_encrypt".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="crypto".*operation="message_decrypt".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="chat".*operation="message_send".*status="success"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="crypto".*operation="message_encrypt".*status="success"`,
		`2`,
	)
}

type recordedOp struct {
	domain, operation, status string
}

type recordingMetrics struct {
	ops       []recordedOp
	durations int
}

func (r *recordingMetrics) RecordOperation(_ context.Context, domain, operation, status string) {
	r.ops = append(r.ops, recordedOp{domain, operation, status})
}

func (r *recordingMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {
	r.durations++
}

func TestObserve(t *testing.T) {
	rec := &recordingMetrics{}
	ctx := context.Background()

	Observe(ctx, rec, "chat", "message_send", time.Now(), nil)
	Observe(ctx, rec, "outbox", "event_process", time.Now(), assert.AnError)

	assert.Equal(t, []recordedOp{
		{"chat", "message_send", StatusSuccess},
		{"outbox", "event_process", StatusError},
	}, rec.ops)
	assert.Equal(t, 2, rec.durations)
}
