// Package dataset discovers the loadable image/contour pairs of a cardiac MRI
// dataset. A dataset root contains a link.csv file mapping each study's DICOM
// directory to its contour directory:
//
//	<root>/link.csv
//	<root>/dicoms/<dicom_id>/<slice>.dcm
//	<root>/contourfiles/<contour_id>/i-contours/IM-0001-<slice>-icontour-manual.txt
//
// Enumerate walks every study up front and returns identifiers spanning the
// whole corpus, so shuffled sampling draws uniformly across studies rather
// than one study at a time.
package dataset

import "fmt"

// Item identifies one loadable (image, contour) pairing. It is immutable
// once enumerated.
type Item struct {
	// ImagePath is the path to the DICOM file.
	ImagePath string

	// ContourPath is the path to the contour annotation matching the image.
	ContourPath string
}

// Options controls enumeration order.
type Options struct {
	// Shuffle randomizes the identifier sequence. Without it, items are
	// returned in a deterministic sorted order.
	Shuffle bool

	// Seed seeds the shuffle, making the sequence reproducible.
	Seed int64
}

// LayoutError reports an unrecognized dataset structure: a missing or
// malformed link.csv, or a study directory that cannot be read. Unlike a
// single corrupt data file, a layout problem indicates a misconfigured run,
// so it is fatal rather than skipped.
type LayoutError struct {
	Path string
	Err  error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("dataset layout: %s: %v", e.Path, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}
