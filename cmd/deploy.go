package cmd

import (
	"github.com/spf13/cobra"
)

// deployCmd: susi deploy
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Open Railway to deploy a generated backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		openPage(cmd.Context(), rootDependencies, "Redirecting to Railway for deployment...", rootDependencies.Config.DeployURL)
		return nil
	},
}

// feedbackCmd: susi feedback
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Open the feedback form.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		openPage(cmd.Context(), rootDependencies, "Opening Feedback Form... Please fill out the form in your browser.", rootDependencies.Config.FeedbackURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(feedbackCmd)
}
