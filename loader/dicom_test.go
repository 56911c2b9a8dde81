package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvseg/dicomflow/dataset"
	"github.com/lvseg/dicomflow/loader"
)

// These cover the failure half of the production loader's contract: every
// bad input comes back as an error return, never a panic, so the pipeline
// can turn it into a skip. The success path needs real DICOM fixtures and is
// exercised against actual study data.

func TestDICOM_MissingImage(t *testing.T) {
	ldr := &loader.DICOM{}
	_, err := ldr.Load(context.Background(), dataset.Item{
		ImagePath:   filepath.Join(t.TempDir(), "48.dcm"),
		ContourPath: filepath.Join(t.TempDir(), "contour.txt"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "read dicom")
}

func TestDICOM_CorruptImage(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "48.dcm")
	require.NoError(t, os.WriteFile(imagePath, []byte("this is not a dicom file"), 0o644))

	ldr := &loader.DICOM{}
	require.NotPanics(t, func() {
		_, err := ldr.Load(context.Background(), dataset.Item{
			ImagePath:   imagePath,
			ContourPath: filepath.Join(dir, "contour.txt"),
		})
		require.Error(t, err)
	})
}
