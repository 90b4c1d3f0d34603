package cmd

import (
	"fmt"

	"github.com/meysamhadeli/susi/views"
	"github.com/spf13/cobra"
)

// downloadCmd: susi download
var downloadCmd = &cobra.Command{
	Use:   "download <download-url>",
	Short: "Download a generated backend archive as backend.zip.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		path, err := downloadBackend(cmd.Context(), rootDependencies, args[0], "")
		if err != nil {
			return notifyFailure(rootDependencies, err)
		}
		views.NotifySuccess(rootDependencies.Out, fmt.Sprintf("✅ Backend ZIP downloaded! Saved to %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
