package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	analyzer_models "github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/file_tree"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/meysamhadeli/susi/views"
	"github.com/spf13/cobra"
)

// generateCmd: susi generate
var generateCmd = &cobra.Command{
	Use:   "generate [github-url]",
	Short: "Generate a backend from an analysis summary.",
	Long: `The 'generate' subcommand sends an analysis summary to the generation service and prints the
generated backend structure. The summary comes from a GitHub URL analyzed first, from --summary,
--summary-file, or from a JSON file written by 'susi analyze --json' (--from). With --download the
archive is saved as backend.zip in --out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleGenerateCommand(cmd, rootDependencies, args)
	},
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("summary", "", "Analysis summary text to generate from")
	cmd.Flags().String("summary-file", "", "File containing the analysis summary")
	cmd.Flags().String("from", "", "Analysis JSON written by 'susi analyze --json'")
	cmd.Flags().Bool("download", false, "Download backend.zip after generation")
}

func handleGenerateCommand(cmd *cobra.Command, rootDependencies *RootDependencies, args []string) error {
	ctx := cmd.Context()
	out := rootDependencies.Out

	if len(args) == 1 {
		request := analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: args[0], Framework: rootDependencies.Config.Framework}
		if _, err := analyzeProject(ctx, rootDependencies, request); err != nil {
			return notifyFailure(rootDependencies, err)
		}
	} else {
		project, err := projectFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := seedAnalysis(rootDependencies, project); err != nil {
			return notifyFailure(rootDependencies, err)
		}
	}

	if _, err := generateBackend(ctx, rootDependencies); err != nil {
		return notifyFailure(rootDependencies, err)
	}

	views.NotifySuccess(out, "Backend generated successfully!")
	snapshot := rootDependencies.Session.Snapshot()
	if err := views.RenderBackend(out, snapshot); err != nil {
		return err
	}

	if download, _ := cmd.Flags().GetBool("download"); download {
		path, err := downloadBackend(ctx, rootDependencies, snapshot.DownloadURL(), "")
		if err != nil {
			return notifyFailure(rootDependencies, err)
		}
		views.NotifySuccess(out, fmt.Sprintf("✅ Backend ZIP downloaded! Saved to %s", path))
	}
	return nil
}

func projectFromFlags(cmd *cobra.Command) (*provider_models.ProjectData, error) {
	summary, _ := cmd.Flags().GetString("summary")
	summaryFile, _ := cmd.Flags().GetString("summary-file")
	from, _ := cmd.Flags().GetString("from")

	switch {
	case from != "":
		data, err := os.ReadFile(from)
		if err != nil {
			return nil, fmt.Errorf("failed to read analysis '%s': %w", from, err)
		}
		var project provider_models.ProjectData
		if err := json.Unmarshal(data, &project); err != nil {
			return nil, fmt.Errorf("failed to decode analysis '%s': %w", from, err)
		}
		project.Normalize()
		return &project, nil

	case summaryFile != "":
		data, err := os.ReadFile(summaryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read summary '%s': %w", summaryFile, err)
		}
		summary = string(data)
	}

	if strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("%w: pass a GitHub URL, --summary, --summary-file or --from", errs.ErrNoAnalysis)
	}

	project := &provider_models.ProjectData{AISummary: summary}
	project.Normalize()
	return project, nil
}

// seedAnalysis records an analysis that was produced outside this process.
func seedAnalysis(rootDependencies *RootDependencies, project *provider_models.ProjectData) error {
	rootName := analyzer_models.DefaultRootName
	if project.RepoURL != "" {
		rootName = analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: project.RepoURL}.RootName()
	}

	tree := file_tree.Build(rootName, project.Structure)
	request := analyzer_models.AnalysisRequest{Source: analyzer_models.SourceGithub, URL: project.RepoURL, Framework: project.Framework}
	if err := rootDependencies.Session.BeginAnalysis(request); err != nil {
		return err
	}
	rootDependencies.Session.EndAnalysis(&analyzer_models.AnalysisResult{
		Project:  project,
		RootName: rootName,
		Tree:     tree,
		Expanded: file_tree.ExpandAll(tree),
	}, nil)
	return nil
}
