package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lvseg/dicomflow/loader"
)

// Batch is an ordered group of successfully loaded pairs, emitted together.
// Seq is the batch's position in the stream, starting at 0; consumers
// observe batches in Seq order.
type Batch struct {
	Seq   int
	Pairs []*loader.Pair
}

// Len returns the number of pairs in the batch.
func (b *Batch) Len() int {
	return len(b.Pairs)
}

// Images returns the image of every pair, in batch order.
func (b *Batch) Images() []*mat.Dense {
	images := make([]*mat.Dense, len(b.Pairs))
	for i, p := range b.Pairs {
		images[i] = p.Image
	}
	return images
}

// Masks returns the mask of every pair, in batch order. Masks()[i] is
// aligned with Images()[i].
func (b *Batch) Masks() []*mat.Dense {
	masks := make([]*mat.Dense, len(b.Pairs))
	for i, p := range b.Pairs {
		masks[i] = p.Mask
	}
	return masks
}
