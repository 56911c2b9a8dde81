package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestDataset(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	link := "patient_id,original_id\nSCD0000101,SC-HF-I-1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "link.csv"), []byte(link), 0o644))

	dicomDir := filepath.Join(root, "dicoms", "SCD0000101")
	contourDir := filepath.Join(root, "contourfiles", "SC-HF-I-1", "i-contours")
	require.NoError(t, os.MkdirAll(dicomDir, 0o755))
	require.NoError(t, os.MkdirAll(contourDir, 0o755))

	for _, names := range [][2]string{
		{"48.dcm", "IM-0001-0048-icontour-manual.txt"},
		{"59.dcm", "IM-0001-0059-icontour-manual.txt"},
		{"68.dcm", "IM-0001-0068-icontour-manual.txt"},
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dicomDir, names[0]), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(contourDir, names[1]), nil, 0o644))
	}
	return root
}

func TestRun_StubLoaderEndToEnd(t *testing.T) {
	root := writeTestDataset(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"run",
		"--data-dir", root,
		"--loader", "stub",
		"--batch-size", "2",
		"--queue-capacity", "2",
		"--seed", "7",
		"--log-level", "error",
	})

	require.NoError(t, cmd.Execute())
}

func TestRun_LoaderFromEnv(t *testing.T) {
	root := writeTestDataset(t)
	t.Setenv("DICOMFLOW_LOADER", "stub")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--data-dir", root, "--log-level", "error"})

	require.NoError(t, cmd.Execute())
}

func TestRun_MissingDataDir(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--loader", "stub", "--log-level", "error"})

	require.Error(t, cmd.Execute())
}

func TestRun_UnknownLoader(t *testing.T) {
	root := writeTestDataset(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--data-dir", root, "--loader", "nope", "--log-level", "error"})

	require.Error(t, cmd.Execute())
}

func TestRun_BadLayoutFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--data-dir", t.TempDir(), "--loader", "stub", "--log-level", "error"})

	require.Error(t, cmd.Execute())
}
