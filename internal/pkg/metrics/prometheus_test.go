package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kargones/api-smoke/internal/pkg/logging"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) Config {
	return Config{
		Enabled:        true,
		PushgatewayURL: url,
		JobName:        "api-smoke",
		Timeout:        5 * time.Second,
		InstanceLabel:  "ci-runner",
	}
}

func gather(t *testing.T, c *PrometheusCollector) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// TestPrometheusCollector_RecordCheck проверяет запись histogram и counter по исходам.
func TestPrometheusCollector_RecordCheck(t *testing.T) {
	collector, err := NewPrometheusCollector(testConfig("http://localhost:9091"), logging.NewNopLogger())
	require.NoError(t, err)

	collector.RecordCheck("list-discounts", "passed", 120*time.Millisecond)
	collector.RecordCheck("create-discount", "failed", 300*time.Millisecond)
	collector.RecordCheck("get-discount", "skipped", 0)
	collector.RecordRun("failed", time.Second)

	families := gather(t, collector)
	require.Contains(t, families, "smoke_check_duration_seconds")
	require.Contains(t, families, "smoke_check_total")
	require.Contains(t, families, "smoke_run_duration_seconds")

	counters := families["smoke_check_total"].GetMetric()
	assert.Len(t, counters, 3)

	outcomes := map[string]bool{}
	for _, m := range counters {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" {
				outcomes[l.GetValue()] = true
			}
		}
		assert.Equal(t, float64(1), m.GetCounter().GetValue())
	}
	assert.Equal(t, map[string]bool{"passed": true, "failed": true, "skipped": true}, outcomes)
}

// TestPrometheusCollector_Push проверяет отправку в Pushgateway с job и instance.
func TestPrometheusCollector_Push(t *testing.T) {
	var receivedMethod, receivedPath, receivedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		receivedPath = r.URL.Path
		body, _ := io.ReadAll(r.Body) //nolint:errcheck // test server
		receivedBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)

	collector.RecordCheck("login", "passed", 50*time.Millisecond)
	require.NoError(t, collector.Push(context.Background()))

	assert.Equal(t, http.MethodPut, receivedMethod)
	assert.Equal(t, "/metrics/job/api-smoke/instance/ci-runner", receivedPath)
	assert.NotEmpty(t, receivedBody)
}

// TestPrometheusCollector_PushError проверяет, что ошибка Pushgateway не возвращается.
func TestPrometheusCollector_PushError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	collector, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)

	assert.NoError(t, collector.Push(context.Background()))
}

func TestPrometheusCollector_PushCancelledContext(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer server.Close()

	collector, err := NewPrometheusCollector(testConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, collector.Push(ctx))
	assert.False(t, called)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"выключено", Config{}, nil},
		{"валидно", testConfig("http://pg:9091"), nil},
		{"нет URL", Config{Enabled: true, JobName: "j", Timeout: time.Second}, ErrPushgatewayURLRequired},
		{"кривой URL", Config{Enabled: true, PushgatewayURL: "pg:9091/x", JobName: "j", Timeout: time.Second}, ErrPushgatewayURLInvalid},
		{"нет job", Config{Enabled: true, PushgatewayURL: "http://pg:9091", Timeout: time.Second}, ErrJobNameRequired},
		{"нулевой таймаут", Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j"}, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewCollector_Factory(t *testing.T) {
	c, err := NewCollector(DefaultConfig(), logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &NopCollector{}, c)

	c, err = NewCollector(testConfig("http://pg:9091"), logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &PrometheusCollector{}, c)

	_, err = NewCollector(Config{Enabled: true}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestNopCollector(t *testing.T) {
	c := NewNopCollector()
	c.RecordCheck("login", "passed", time.Second)
	c.RecordRun("passed", time.Second)
	assert.NoError(t, c.Push(context.Background()))
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "a_b", sanitizeLabel("a\nb"))
	assert.Equal(t, maxLabelLength, len([]rune(sanitizeLabel(strings.Repeat("я", 200)))))
	assert.Equal(t, "create-discount", sanitizeLabel("create-discount"))
}
