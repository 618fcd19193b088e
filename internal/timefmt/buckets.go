package timefmt

import (
	"sort"
	"time"
)

// Bucket is one day-granular group. Two instants share a bucket iff their
// short labels are equal.
type Bucket[V any] struct {
	Label  string
	Latest time.Time
	Value  V
}

// DayBuckets accumulates values per short-label day.
type DayBuckets[V any] struct {
	f       Formatter
	index   map[string]int
	buckets []Bucket[V]
}

func NewDayBuckets[V any](f Formatter) *DayBuckets[V] {
	return &DayBuckets[V]{
		f:     f,
		index: make(map[string]int),
	}
}

// Add returns the accumulator for t's day, creating it on first use. The
// pointer is only valid until the next Add.
func (d *DayBuckets[V]) Add(t time.Time) *V {
	label := d.f.ShortLabel(t)
	i, ok := d.index[label]
	if !ok {
		d.buckets = append(d.buckets, Bucket[V]{Label: label, Latest: t})
		i = len(d.buckets) - 1
		d.index[label] = i
	}
	b := &d.buckets[i]
	if t.After(b.Latest) {
		b.Latest = t
	}
	return &b.Value
}

func (d *DayBuckets[V]) Len() int {
	return len(d.buckets)
}

// Recent returns buckets in ascending day order, keeping the trailing max.
// max <= 0 keeps everything.
func (d *DayBuckets[V]) Recent(max int) []Bucket[V] {
	out := make([]Bucket[V], len(d.buckets))
	copy(out, d.buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Latest.Before(out[j].Latest)
	})
	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}
