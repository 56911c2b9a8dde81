// Package loader turns dataset identifiers into loaded (image, mask) pairs.
// The Loader interface is the pluggable boundary of the pipeline: the
// production DICOM implementation and the Stub used for verifying pipeline
// control flow satisfy the same contract and are selected once at
// construction time.
package loader

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lvseg/dicomflow/dataset"
)

// Pair is one loaded data unit: the decoded image and the contour mask
// rasterized to the image's dimensions, together with the identifier it was
// loaded from.
type Pair struct {
	Item  dataset.Item
	Image *mat.Dense
	Mask  *mat.Dense
}

// Loader loads one item. A non-nil error means the item could not be loaded;
// callers treat it as a skip, not a failure of the run. Implementations
// report failures through the error return and must not panic, though the
// load worker still guards the call site defensively.
type Loader interface {
	Load(ctx context.Context, item dataset.Item) (*Pair, error)
}

// Select returns the loader implementation registered under name. Two
// implementations exist: "dicom" (production) and "stub" (testing).
func Select(name string) (Loader, error) {
	switch name {
	case "dicom":
		return &DICOM{}, nil
	case "stub":
		return &Stub{}, nil
	default:
		return nil, fmt.Errorf(`unknown loader %q (want "dicom" or "stub")`, name)
	}
}
