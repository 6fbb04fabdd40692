// Package flat reads FAISS IndexFlatIP files and searches them exactly.
package flat

import (
	"container/heap"
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/hadith-search/internal/core/domain"
	"github.com/custodia-labs/hadith-search/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// cancelCheckInterval is how many vectors are scored between context checks.
const cancelCheckInterval = 4096

// Index holds every vector in one contiguous slice, row-major.
type Index struct {
	mu   sync.RWMutex
	dim  int
	data []float32
}

// New creates an empty index of the given dimension.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive", domain.ErrInvalidInput)
	}
	return &Index{dim: dim}, nil
}

// Add appends vectors. Positions are assigned in order starting at Len().
// Add is a build-time operation and must not run concurrently with serving.
func (x *Index) Add(vectors ...[]float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for i, v := range vectors {
		if len(v) != x.dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, index has %d",
				domain.ErrDimensionMismatch, i, len(v), x.dim)
		}
	}
	for _, v := range vectors {
		x.data = append(x.data, v...)
	}
	return nil
}

// Vector returns a copy of the vector at position.
func (x *Index) Vector(position int64) ([]float32, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if position < 0 || position >= int64(x.len()) {
		return nil, domain.ErrNotFound
	}
	start := int(position) * x.dim
	out := make([]float32, x.dim)
	copy(out, x.data[start:start+x.dim])
	return out, nil
}

// Search returns the k vectors with the largest inner product with query.
// Equal scores keep ascending position order.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), x.dim)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	n := x.len()
	top := make(hitHeap, 0, min(k, n))
	for pos := 0; pos < n; pos++ {
		if pos%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		score := Dot(query, x.data[pos*x.dim:(pos+1)*x.dim])
		hit := driven.VectorHit{Position: int64(pos), Score: score}
		if len(top) < k {
			heap.Push(&top, hit)
		} else if worse(top[0], hit) {
			top[0] = hit
			heap.Fix(&top, 0)
		}
	}

	out := make([]driven.VectorHit, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&top).(driven.VectorHit)
	}
	return out, nil
}

// Len returns the number of vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.len()
}

func (x *Index) len() int {
	return len(x.data) / x.dim
}

// Dimensions returns the vector size.
func (x *Index) Dimensions() int {
	return x.dim
}

// Close releases the vectors.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.data = nil
	return nil
}

// Dot returns the inner product of a and b, which must have equal length.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// worse reports whether a ranks below b: lower score, or equal score at a later position.
func worse(a, b driven.VectorHit) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Position > b.Position
}

// hitHeap is a min-heap on rank, so the root is the weakest hit kept so far.
type hitHeap []driven.VectorHit

func (h hitHeap) Len() int           { return len(h) }
func (h hitHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h hitHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *hitHeap) Push(x any) { *h = append(*h, x.(driven.VectorHit)) }

func (h *hitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
