package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, RequestsTotal, tt.tool, tt.wantStatus)
			RecordRequest(tt.tool, tt.duration, tt.success)

			if got := counterValue(t, RequestsTotal, tt.tool, tt.wantStatus); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name      string
		language  string
		action    string
		duration  float64
		success   bool
		errorKind string
	}{
		{
			name:     "successful search",
			language: "de",
			action:   "search",
			duration: 0.1,
			success:  true,
		},
		{
			name:      "upstream error on langlinks",
			language:  "es",
			action:    "langlinks",
			duration:  0.5,
			success:   false,
			errorKind: "upstream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := "success"
			if !tt.success {
				status = "error"
			}
			before := counterValue(t, WikiAPIRequestsTotal, tt.language, tt.action, status)

			RecordAPICall(tt.language, tt.action, tt.duration, tt.success, tt.errorKind)

			if got := counterValue(t, WikiAPIRequestsTotal, tt.language, tt.action, status); got != before+1 {
				t.Errorf("request counter = %v, want %v", got, before+1)
			}

			if tt.errorKind != "" {
				if got := counterValue(t, WikiAPIErrors, tt.language, tt.action, tt.errorKind); got < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := counterValue(t, HTTPRequestsTotal, "search", "200")
	RecordHTTPRequest("search", "200", 0.02)

	if got := counterValue(t, HTTPRequestsTotal, "search", "200"); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

func TestRecordTranslationLookup(t *testing.T) {
	foundBefore := counterValue(t, TranslationLookups, "de", "es", "found")
	missingBefore := counterValue(t, TranslationLookups, "de", "es", "missing")

	RecordTranslationLookup("de", "es", true)
	RecordTranslationLookup("de", "es", false)
	RecordTranslationLookup("de", "es", false)

	if got := counterValue(t, TranslationLookups, "de", "es", "found"); got != foundBefore+1 {
		t.Errorf("found = %v, want %v", got, foundBefore+1)
	}
	if got := counterValue(t, TranslationLookups, "de", "es", "missing"); got != missingBefore+2 {
		t.Errorf("missing = %v, want %v", got, missingBefore+2)
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		WikiAPILatency,
		WikiAPIRequestsTotal,
		WikiAPIErrors,
		DisambiguationFiltered,
		TranslationLookups,
		ConcurrencyWaits,
		PanicsRecovered,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestHandler(t *testing.T) {
	RecordRequest("handler_probe", 0.01, true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), Namespace+"_requests_total") {
		t.Error("expected requests_total in exposition output")
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "wikitranslate_mcp" {
		t.Errorf("expected namespace 'wikitranslate_mcp', got '%s'", Namespace)
	}
}

// counterValue reads the current value of one labeled counter
func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
