package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dicomflow",
		Short:         "Stream batches of DICOM images and contour masks",
		Long:          "dicomflow enumerates a cardiac MRI dataset and streams matched (image, mask)\nbatches through a bounded queue, loading in the background so the consumer\nnever waits on disk.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newRunCmd())
	return cmd
}
