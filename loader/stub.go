package loader

import (
	"context"
	"hash/fnv"

	"gonum.org/v1/gonum/mat"

	"github.com/lvseg/dicomflow/dataset"
)

// Stub is a loader for exercising the pipeline without touching disk. The
// payload it produces is a deterministic function of the identifier alone,
// so every emitted pair can be traced back to the item it was loaded from.
type Stub struct{}

// Load implements the Loader interface. It never fails.
func (s *Stub) Load(_ context.Context, item dataset.Item) (*Pair, error) {
	return &Pair{
		Item:  item,
		Image: pathMatrix(item.ImagePath),
		Mask:  pathMatrix(item.ContourPath),
	}, nil
}

// pathMatrix derives a 1×2 matrix from a path's hash.
func pathMatrix(path string) *mat.Dense {
	h := fnv.New64a()
	h.Write([]byte(path))
	sum := h.Sum64()
	return mat.NewDense(1, 2, []float64{
		float64(sum >> 32),
		float64(sum & 0xffffffff),
	})
}
