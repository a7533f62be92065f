package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-aidich/internal/batch"
	"github.com/alnah/go-aidich/internal/config"
	"github.com/alnah/go-aidich/internal/endpoint"
)

// Defaults for the run command.
const (
	defaultInputDir  = "."
	defaultOutputDir = "output"
	userAgent        = "aidich"
)

// runOptions holds validated options for the run command.
type runOptions struct {
	inputDir   string
	outputDir  string
	configPath string
	baseURL    string
	mode       batch.Mode
	timeout    time.Duration
	verbose    bool
}

// RunCmd creates the run command (process every .txt file in a directory).
// The env parameter provides injectable dependencies for testing.
func RunCmd(env *Env) *cobra.Command {
	var (
		inputDir   string
		outputDir  string
		configPath string
		baseURL    string
		chunking   bool
		timeout    time.Duration
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every .txt file in a directory",
		Long: `Send every .txt file in the input directory to the endpoint and write
one result file per input into the output directory.

Files longer than 1980 characters are split into chunks of roughly 1000
characters along line breaks (or periods, or question marks) and the chunk
results are joined line by line. A chunk that fails is reported and left out.

Credentials are read from config.cfg (username,password[,activate_beta]).`,
		Example: `  aidich run
  aidich run --input-dir ./chapters --output-dir ./translated
  aidich run --chunking=false        # Send each file whole
  aidich run --config ~/.aidich.cfg -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseRunOptions(env, inputDir, outputDir, configPath, baseURL, chunking, timeout, verbose)
			if err != nil {
				return err
			}
			return runRun(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", defaultInputDir, "Directory containing .txt files")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: output, env: "+config.EnvOutputDir+")")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Credential file (default: config.cfg, env: "+config.EnvConfigPath+")")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Endpoint URL (default: "+endpoint.DefaultBaseURL+", env: "+config.EnvBaseURL+")")
	cmd.Flags().BoolVar(&chunking, "chunking", true, "Split large files into chunks")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (0 = no limit)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")

	return cmd
}

// parseRunOptions validates CLI inputs and applies env fallbacks.
// Precedence: flag, then environment, then default.
func parseRunOptions(env *Env, inputDir, outputDir, configPath, baseURL string, chunking bool, timeout time.Duration, verbose bool) (runOptions, error) {
	if timeout < 0 {
		return runOptions{}, fmt.Errorf("%w: %s", ErrInvalidTimeout, timeout)
	}

	if inputDir == "" {
		inputDir = defaultInputDir
	}
	if outputDir == "" {
		outputDir = env.Getenv(config.EnvOutputDir)
	}
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	if baseURL == "" {
		baseURL = env.Getenv(config.EnvBaseURL)
	}

	mode := batch.ModeChunked
	if !chunking {
		mode = batch.ModeSingle
	}

	return runOptions{
		inputDir:   config.ExpandPath(inputDir),
		outputDir:  config.ExpandPath(outputDir),
		configPath: config.ResolvePath(configPath, env.Getenv),
		baseURL:    baseURL,
		mode:       mode,
		timeout:    timeout,
		verbose:    verbose,
	}, nil
}

// runRun executes the batch with validated options.
func runRun(cmd *cobra.Command, env *Env, opts runOptions) error {
	ctx := cmd.Context()
	logger := newLogger(env.Stderr, opts.verbose)

	// === SETUP (fail-fast) ===

	cfg, err := env.ConfigLoader.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger.Debug("Loaded config", "path", opts.configPath, "config", cfg)

	client, err := env.ClientFactory.NewClient(cfg,
		endpoint.WithBaseURL(opts.baseURL),
		endpoint.WithTimeout(opts.timeout),
		endpoint.WithUserAgent(userAgent),
		endpoint.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	docs, err := batch.Discover(opts.inputDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputDir, err)
	}

	// === PROCESS ===

	logger.Info("Starting batch", "documents", len(docs), "mode", opts.mode, "output", opts.outputDir)

	runner := batch.NewRunner(client, opts.outputDir,
		batch.WithMode(opts.mode),
		batch.WithLogger(logger),
	)
	if err := runner.Run(ctx, docs); err != nil {
		return err
	}

	logger.Info("Done", "documents", len(docs), "output", opts.outputDir)
	return nil
}
