package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"gonum.org/v1/gonum/mat"

	"github.com/lvseg/dicomflow/contour"
	"github.com/lvseg/dicomflow/dataset"
)

// DICOM is the production loader. It decodes the DICOM pixel data, parses
// the contour annotation, and rasterizes the contour into a mask aligned
// with the image. Any unreadable file, malformed annotation, or degenerate
// polygon is reported as an error so the pipeline can skip the item.
type DICOM struct{}

// Load implements the Loader interface.
func (l *DICOM) Load(_ context.Context, item dataset.Item) (*Pair, error) {
	image, err := readPixels(item.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("read dicom %s: %w", item.ImagePath, err)
	}

	polygon, err := contour.ParseFile(item.ContourPath)
	if err != nil {
		return nil, fmt.Errorf("parse contour %s: %w", item.ContourPath, err)
	}

	rows, cols := image.Dims()
	mask, err := contour.ToMask(polygon, cols, rows)
	if err != nil {
		return nil, fmt.Errorf("rasterize contour %s: %w", item.ContourPath, err)
	}

	return &Pair{Item: item, Image: image, Mask: mask}, nil
}

// readPixels decodes the first frame of the DICOM file at path into a
// rows×cols intensity matrix.
func readPixels(path string) (*mat.Dense, error) {
	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, err
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, err
	}
	info, ok := el.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, errors.New("pixel data element holds no pixel data")
	}
	if len(info.Frames) == 0 {
		return nil, errors.New("dicom contains no image frames")
	}

	frame, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, err
	}
	if frame.Rows < 1 || frame.Cols < 1 {
		return nil, fmt.Errorf("image dimensions %dx%d out of range", frame.Rows, frame.Cols)
	}

	image := mat.NewDense(frame.Rows, frame.Cols, nil)
	for y := 0; y < frame.Rows; y++ {
		for x := 0; x < frame.Cols; x++ {
			image.Set(y, x, float64(frame.Data[y*frame.Cols+x][0]))
		}
	}
	return image, nil
}
