package status

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(MetricSeeds)
	b := r.Ints.Get(MetricSeeds)
	if a != b {
		t.Error("Expected the same pointer for repeated Get")
	}
	a.Store(42)
	if r.Ints.Get(MetricSeeds).Load() != 42 {
		t.Error("Expected stored value through cached pointer")
	}
	if r.TotalCount() != 1 {
		t.Errorf("Expected 1 metric, got %d", r.TotalCount())
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("Expected sorted keys, got %v", keys)
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomicInt]()
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(MetricImpacts).Add(1)
		}()
	}
	wg.Wait()

	if got := m.Get(MetricImpacts).Load(); got != 32 {
		t.Errorf("Expected 32 increments on one shared metric, got %d", got)
	}
	if keys := m.Keys(); len(keys) != 1 || keys[0] != MetricImpacts {
		t.Errorf("Expected a single key, got %v", keys)
	}
}

func TestAtomicFloatMaxConcurrent(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			f.Max(v)
		}(float64(i))
	}
	wg.Wait()

	if f.Get() != 63 {
		t.Errorf("Expected max 63, got %f", f.Get())
	}
	if f.Max(10) != 63 {
		t.Error("Expected smaller value not to lower the max")
	}
}

func TestReport(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(MetricSeeds).Store(123)
	r.Floats.Get(MetricPeakEnergy).Set(4.5)

	var buf bytes.Buffer
	err := Report(&buf, "textfall run", r,
		Series{Name: "active bodies", Values: []float64{10, 10, 9, 7, 4, 1}},
		Series{Name: "skipped", Values: []float64{1}},
	)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"textfall run", "2 metrics", MetricSeeds, "123", MetricPeakEnergy, "4.5", "active bodies"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Error("Expected single-value series to be skipped")
	}
}
