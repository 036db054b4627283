package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/contacts", 200, 40*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/contacts", 200, 15*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	count := counterValue(t, mfs, "http_requests_total")
	if count != 2 {
		t.Fatalf("expected 2 requests, got %f", count)
	}

	sum := histogramSum(t, mfs, "http_request_duration_seconds")
	if sum <= 0 {
		t.Fatalf("expected positive duration sum, got %f", sum)
	}
}

func TestHTTPMetricsNilRegistererIsNoop(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func histogramSum(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, metric := range mf.GetMetric() {
			total += metric.GetHistogram().GetSampleSum()
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
