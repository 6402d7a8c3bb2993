package entity

// FeatureVector is an immutable sparse row produced by the text preprocessor.
// Indices are strictly increasing and every index is below Dim.
type FeatureVector struct {
	dim     int
	indices []int
	values  []float64
}

// NewFeatureVector builds a vector from parallel index/value slices that are
// already sorted by index. The slices are copied.
func NewFeatureVector(dim int, indices []int, values []float64) FeatureVector {
	idx := make([]int, len(indices))
	copy(idx, indices)
	val := make([]float64, len(values))
	copy(val, values)
	return FeatureVector{dim: dim, indices: idx, values: val}
}

// Dim returns the dimension of the feature space
func (v FeatureVector) Dim() int {
	return v.dim
}

// NNZ returns the number of stored non-zero entries
func (v FeatureVector) NNZ() int {
	return len(v.indices)
}

// IsZero reports whether no vocabulary term was found in the text
func (v FeatureVector) IsZero() bool {
	return len(v.indices) == 0
}

// Each calls fn for every stored entry in index order
func (v FeatureVector) Each(fn func(index int, value float64)) {
	for i, idx := range v.indices {
		fn(idx, v.values[i])
	}
}

// Dot returns the inner product with a dense weight row of length Dim
func (v FeatureVector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.indices {
		sum += v.values[i] * weights[idx]
	}
	return sum
}

// Value returns the weight stored at index, or zero
func (v FeatureVector) Value(index int) float64 {
	lo, hi := 0, len(v.indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.indices[mid] == index:
			return v.values[mid]
		case v.indices[mid] < index:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}
