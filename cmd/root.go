package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/susi/backend_generator"
	contracts_generator "github.com/meysamhadeli/susi/backend_generator/contracts"
	"github.com/meysamhadeli/susi/code_analyzer"
	contracts_analyzer "github.com/meysamhadeli/susi/code_analyzer/contracts"
	"github.com/meysamhadeli/susi/config"
	"github.com/meysamhadeli/susi/constants/lipgloss"
	contracts_provider "github.com/meysamhadeli/susi/providers/contracts"
	"github.com/meysamhadeli/susi/providers/susi"
	"github.com/meysamhadeli/susi/session_management"
	contracts_session "github.com/meysamhadeli/susi/session_management/contracts"
	"github.com/meysamhadeli/susi/utils"
	"github.com/meysamhadeli/susi/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// urlOpener opens external pages in the user's browser.
type urlOpener interface {
	Open(ctx context.Context, target string) error
}

// RootDependencies is everything a command needs, built once per invocation.
type RootDependencies struct {
	Cwd       string
	Config    *config.Config
	Logger    *pterm.Logger
	Provider  contracts_provider.ISusiProvider
	Analyzer  contracts_analyzer.ICodeAnalyzer
	Generator contracts_generator.IBackendGenerator
	Session   contracts_session.ISessionManagement
	Browser   urlOpener
	Out       io.Writer

	// Interactive enables spinners and the progress bar.
	Interactive bool
}

var rootCmd = &cobra.Command{
	Use:   "susi",
	Short: "Turn a frontend project into a generated backend.",
	Long: `susi analyzes a frontend project, from a public GitHub repository or a zipped upload,
shows its structure, detected API endpoints and an AI summary, and then generates a matching
backend that can be downloaded as backend.zip and deployed. Without a subcommand it starts an
interactive session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("susi version %s", config.DefaultConfig.Version)))
			return nil
		}

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleSessionCommand(cmd.Context(), rootDependencies, os.Stdin)
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// handleRootCommand loads the configuration and wires the services for cmd.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	return newRootDependencies(cwd, cfg)
}

func newRootDependencies(cwd string, cfg *config.Config) (*RootDependencies, error) {
	logger := utils.NewLogger(cfg.Verbose)

	provider := susi.NewSusiProvider(&susi.SusiConfig{
		BaseURL: cfg.ServiceConfig.BaseURL,
		Version: cfg.Version,
		Timeout: cfg.ServiceConfig.Timeout,
		Logger:  logger,
	})

	var cacheManager *code_analyzer.CacheManager
	if cfg.EnableCache {
		var err error
		cacheManager, err = code_analyzer.NewCacheManager(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	progress, err := backend_generator.NewProgressSimulator(backend_generator.DefaultGenerationSteps, cfg.GenerationConfig.StepDelay)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", logger.Args(
		"config_file", config.ConfigFileUsed(),
		"base_url", cfg.ServiceConfig.BaseURL,
		"framework", cfg.Framework,
		"cache_enabled", cfg.EnableCache,
	))

	return &RootDependencies{
		Cwd:       cwd,
		Config:    cfg,
		Logger:    logger,
		Provider:  provider,
		Analyzer:  code_analyzer.NewCodeAnalyzer(provider, cacheManager, logger),
		Generator: backend_generator.NewBackendGenerator(provider, progress, logger),
		Session:   session_management.NewSessionManager(cfg.Framework),
		Browser:   utils.NewBrowserOpener(),
		Out:       os.Stdout,

		Interactive: true,
	}, nil
}

// reportedError is an error already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// notifyFailure shows err and marks it as reported.
func notifyFailure(rootDependencies *RootDependencies, err error) error {
	views.NotifyError(rootDependencies.Out, err)
	return &reportedError{err: err}
}

// Execute runs the root command; ctx is canceled on SIGINT or SIGTERM by the caller.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
	}
	return err
}
