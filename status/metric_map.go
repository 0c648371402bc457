package status

import (
	"slices"
	"sync"
)

// MetricMap holds one run's metrics of type T by key
// Values are allocated on first use and never replaced, so callers may keep the pointer
type MetricMap[T any] struct {
	items sync.Map // string -> *T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the metric for key, allocating a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, _ := m.items.LoadOrStore(key, new(T))
	return v.(*T)
}

// Keys returns the registered keys in report order
func (m *MetricMap[T]) Keys() []string {
	var keys []string
	m.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys
}

// Range visits metrics in key order; metrics registered during the walk are not visited
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range m.Keys() {
		fn(k, m.Get(k))
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	return len(m.Keys())
}
