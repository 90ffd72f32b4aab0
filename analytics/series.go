package analytics

// Point is one labelled bucket in a chart series.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// buckets accumulates values per key, remembering the order keys first
// appeared. The inspection charts rely on first-occurrence order.
type buckets struct {
	order []string
	vals  map[string]float64
}

func newBuckets() *buckets {
	return &buckets{vals: make(map[string]float64)}
}

func (b *buckets) add(key string, v float64) {
	if _, ok := b.vals[key]; !ok {
		b.order = append(b.order, key)
	}
	b.vals[key] += v
}

// points returns the buckets in insertion order, keeping at most limit
// entries (limit <= 0 means all).
func (b *buckets) points(limit int) []Point {
	keys := b.order
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]Point, 0, len(keys))
	for _, k := range keys {
		out = append(out, Point{Name: k, Value: b.vals[k]})
	}
	return out
}
