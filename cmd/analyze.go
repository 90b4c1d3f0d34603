package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/views"
	"github.com/spf13/cobra"
)

// analyzeCmd: susi analyze
var analyzeCmd = &cobra.Command{
	Use:   "analyze [github-url]",
	Short: "Analyze a frontend project and print its structure, APIs and AI summary.",
	Long: `The 'analyze' subcommand submits a public GitHub repository, or a zipped project given with --zip,
to the analysis service. It prints the project overview, the structure tree, the AI summary and the
detected API endpoints. Use --json to save the raw analysis for a later 'susi generate --from'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleAnalyzeCommand(cmd, rootDependencies, args)
	},
}

func init() {
	addAnalyzeFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().String("zip", "", "Path of a zipped frontend project to upload instead of a GitHub URL")
	cmd.Flags().Bool("refresh", false, "Skip the analysis cache")
	cmd.Flags().String("json", "", "Write the analysis as JSON to this file")
}

func handleAnalyzeCommand(cmd *cobra.Command, rootDependencies *RootDependencies, args []string) error {
	zipPath, _ := cmd.Flags().GetString("zip")
	refresh, _ := cmd.Flags().GetBool("refresh")
	jsonPath, _ := cmd.Flags().GetString("json")

	request, err := analysisRequestFromArgs(args, zipPath)
	if err != nil {
		return err
	}
	request.Refresh = refresh
	request.Framework = rootDependencies.Config.Framework

	result, err := analyzeProject(cmd.Context(), rootDependencies, request)
	if err != nil {
		return notifyFailure(rootDependencies, err)
	}

	if err := views.RenderAnalysis(rootDependencies.Out, rootDependencies.Session.Snapshot(), rootDependencies.Config.Theme); err != nil {
		return err
	}

	if jsonPath != "" {
		if err := writeProjectJSON(jsonPath, result); err != nil {
			return err
		}
		views.NotifySuccess(rootDependencies.Out, fmt.Sprintf("Analysis saved to %s", jsonPath))
	}
	return nil
}

func analysisRequestFromArgs(args []string, zipPath string) (analyzer_models.AnalysisRequest, error) {
	switch {
	case zipPath != "" && len(args) > 0:
		return analyzer_models.AnalysisRequest{}, fmt.Errorf("use either a GitHub URL or --zip, not both")
	case zipPath != "":
		return analyzer_models.AnalysisRequest{Source: analyzer_models.SourceFile, FilePath: zipPath}, nil
	case len(args) == 1:
		return analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: args[0]}, nil
	default:
		return analyzer_models.AnalysisRequest{}, fmt.Errorf("a GitHub URL or --zip file is required")
	}
}

func writeProjectJSON(path string, result *analyzer_models.AnalysisResult) error {
	data, err := json.MarshalIndent(result.Project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis to '%s': %w", path, err)
	}
	return nil
}
