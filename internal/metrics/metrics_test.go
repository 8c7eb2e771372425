package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncPreload(OutcomeFetched)
	m.IncPreload(OutcomeFetched)
	m.IncPreload("")
	m.IncWebhookEvent("media_deleted")
	m.ObserveFetch(250 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "metadata_preload_total", "outcome", OutcomeFetched); err != nil {
		t.Fatalf("fetch preload: %v", err)
	} else if got != 2 {
		t.Fatalf("expected fetched=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "metadata_preload_total", "outcome", "unknown"); err != nil {
		t.Fatalf("fetch preload: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "metadata_webhook_events_total", "event", "media_deleted"); err != nil {
		t.Fatalf("fetch webhook: %v", err)
	} else if got != 1 {
		t.Fatalf("expected media_deleted=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "metadata_fetch_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("expected fetch duration histogram")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func TestMetricsExportsReconcileCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.AddRelationChanges(ChangeCreated, 3)
	m.AddRelationChanges(ChangeDeleted, 1)
	m.AddRelationChanges(ChangeDeleted, 0)
	m.IncPreloadEnqueued()
	m.IncPreloadEnqueued()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "metadata_relation_changes_total", "change", ChangeCreated); err != nil {
		t.Fatalf("fetch relations: %v", err)
	} else if got != 3 {
		t.Fatalf("expected created=3, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "metadata_relation_changes_total", "change", ChangeDeleted); err != nil {
		t.Fatalf("fetch relations: %v", err)
	} else if got != 1 {
		t.Fatalf("expected deleted=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "metadata_preload_enqueued_total")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("expected enqueued counter")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected enqueued=2, got %f", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.AddRelationChanges(ChangeCreated, 1)
	m.IncPreloadEnqueued()
	m.IncPreload(OutcomeFailed)
	m.IncWebhookEvent("media_updated")
	m.ObserveFetch(time.Second)

	unregistered := New(nil)
	unregistered.IncPreload(OutcomeFresh)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		for _, l := range metric.GetLabel() {
			if l.GetName() == label && l.GetValue() == value {
				return metric.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
