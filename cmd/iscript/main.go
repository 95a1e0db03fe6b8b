// Package main provides the iscript CLI: it runs media scripts, lists the
// command schema and offers an interactive prompt.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"iscript/internal/commands"
	"iscript/internal/config"
	"iscript/internal/logger"
	"iscript/internal/orchestration"
	"iscript/internal/output"
	"iscript/internal/schema"
	"iscript/internal/services"
	"iscript/internal/shell"
	"iscript/internal/version"
	"iscript/pkg/scripttypes"
)

// cli holds the flag values and the state resolved before a subcommand runs.
type cli struct {
	v *viper.Viper

	logLevel   string
	logFile    string
	testMode   bool
	configEnv  string
	outputMode string
	quiet      bool

	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status. Configuration and
// script errors exit with 1 like every other failure; an interrupted run
// exits with 130.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "iscript",
		Short: "iscript - line-oriented media scripting",
		Long: `iscript runs small scripts that load videos and images, transform them
with ffmpeg and declare the files to keep.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.StringVar(&c.logFile, "log-file", "", "Write logs to file instead of stderr")
	flags.BoolVar(&c.testMode, "test-mode", false, "Run in deterministic test mode")
	flags.StringVar(&c.configEnv, "config-env", "", "Load an extra .env file with ISCRIPT_* settings")
	flags.StringVar(&c.outputMode, "output", "auto", "Output mode (auto|styled|plain|json)")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "Suppress console output; errors still go to stderr")
	flags.String(config.KeyFFmpeg, "", "Path of the ffmpeg binary")
	flags.String(config.KeyFFprobe, "", "Path of the ffprobe binary")
	flags.String(config.KeyFFplay, "", "Path of the ffplay binary")
	flags.String(config.KeyFont, "", "TrueType font used by tti")
	flags.String(config.KeySchema, "", "Command schema file (YAML or JSON)")
	for _, key := range []string{config.KeyFFmpeg, config.KeyFFprobe, config.KeyFFplay, config.KeyFont, config.KeySchema} {
		if err := c.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", key, err))
		}
	}

	rootCmd.AddCommand(c.runCmd(), c.commandsCmd(), c.replCmd(), c.versionCmd())
	return rootCmd
}

func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	if err := logger.Configure(c.logLevel, c.logFile, c.testMode); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	opts, err := outputOptions(cmd.OutOrStdout(), c.outputMode, c.quiet, c.testMode)
	if err != nil {
		return &scripttypes.ConfigurationError{Source: "--output", Err: err}
	}
	output.ConfigureGlobal(opts...)

	cfg, err := config.Load(c.v, config.LoadOptions{SkipDotEnv: c.testMode, EnvFile: c.configEnv})
	if err != nil {
		return &scripttypes.ConfigurationError{Source: "config", Err: err}
	}
	c.cfg = cfg
	return nil
}

// outputOptions builds the global printer options. Auto styles output only
// on a terminal outside test mode.
func outputOptions(w io.Writer, mode string, quiet, testMode bool) ([]output.Option, error) {
	m, err := output.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	opts := []output.Option{output.WithWriter(w)}
	switch m {
	case output.ModeJSON:
		opts = append(opts, output.JSON())
	case output.ModePlain:
		opts = append(opts, output.PlainText())
	case output.ModeStyled:
		opts = append(opts, output.WithStyles(output.NewLipglossStyleProvider()), output.WithMode(output.ModeStyled))
	default:
		if testMode || !output.IsTerminal(os.Stdout.Fd()) {
			opts = append(opts, output.PlainText())
		} else {
			opts = append(opts, output.WithStyles(output.NewLipglossStyleProvider()))
		}
	}
	if quiet {
		opts = append(opts, output.Silent())
	}
	return opts, nil
}

func (c *cli) loadSchema() (*schema.Schema, error) {
	if c.cfg.SchemaPath != "" {
		return schema.LoadFile(c.cfg.SchemaPath)
	}
	return schema.Default()
}

func (c *cli) scriptOptions(sch *schema.Schema, workDir string, play bool) orchestration.Options {
	return orchestration.Options{
		Play:     play,
		WorkDir:  workDir,
		TempDir:  c.cfg.TempDir,
		Schema:   sch,
		Tools:    services.NewToolchain(c.cfg),
		TestMode: c.testMode,
	}
}

func (c *cli) runCmd() *cobra.Command {
	var (
		play    bool
		workDir string
	)
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a script file",
		Long: `Execute a script file in a fresh session. Declared attachments are
copied into the working directory when the run ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return &scripttypes.ConfigurationError{Source: args[0], Err: err}
			}
			sch, err := c.loadSchema()
			if err != nil {
				return err
			}

			logger.Info("Running script", "script", args[0], "version", version.Version)
			result, err := orchestration.ExecuteScript(cmd.Context(), string(data), c.scriptOptions(sch, workDir, play))
			if result != nil {
				output.Markdown(output.Summary(result))
			}
			if err == nil {
				output.Success(fmt.Sprintf("%s finished", filepath.Base(args[0])))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "Play every attachment after the run")
	cmd.Flags().StringVar(&workDir, "workdir", "", "Directory for loadfile paths and copied attachments [default: current directory]")
	return cmd
}

func (c *cli) commandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands of the schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sch, err := c.loadSchema()
			if err != nil {
				return err
			}
			output.Markdown(output.CommandsMarkdown(sch, commands.GlobalRegistry))
			return nil
		},
	}
}

func (c *cli) replCmd() *cobra.Command {
	var workDir string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sch, err := c.loadSchema()
			if err != nil {
				return err
			}
			dispatcher := commands.NewDispatcher(sch, commands.GlobalRegistry)
			if err := dispatcher.Validate(); err != nil {
				return err
			}

			opts := c.scriptOptions(sch, workDir, false)
			runner := func(ctx context.Context, script string) (*scripttypes.Result, error) {
				return orchestration.ExecuteScript(ctx, script, opts)
			}

			err = shell.New(dispatcher, runner, output.GetGlobalPrinter()).Run(cmd.Context(), shell.PromptOptions{
				HistoryFile: historyFile(),
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&workDir, "workdir", "", "Directory for loadfile paths and copied attachments [default: current directory]")
	return cmd
}

func historyFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "iscript")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func (c *cli) versionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info, err := version.GetInfo()
			if err != nil {
				return err
			}
			if !verbose {
				output.Println(info.Short())
				return nil
			}

			sch, err := c.loadSchema()
			if err != nil {
				return err
			}
			output.Println(info.Detailed(sch.Version()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build, schema and platform details")
	return cmd
}
