package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rinha/interpreter-go/pkg/driver"
)

// cli carries global flags, output streams and the resolved config shared
// by every subcommand.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	maxDepth   int
	logLevel   string
	color      bool

	cfg    *driver.Config
	logger *slog.Logger
	errOut *color.Color
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout: stdout,
		stderr: stderr,
		errOut: color.New(color.FgRed, color.Bold),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rinha [program.json]",
		Short: "rinha evaluates rinha programs from their JSON syntax tree",
		Long: `rinha is a tree-walking interpreter for the rinha language. Programs are
read as the JSON AST emitted by the rinha parser.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runProgram(args[0])
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to rinha.yml (default: nearest rinha.yml upward from the working directory)")
	flags.IntVar(&c.maxDepth, "max-depth", 0, "maximum nested call depth before StackExhausted")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&c.color, "color", true, "colorize diagnostics")

	root.AddCommand(
		c.runCommand(),
		c.showCommand(),
		c.testCommand(),
		c.corpusCommand(),
		c.versionCommand(),
	)
	return root
}

// loadConfig resolves rinha.yml, .env and RINHA_* variables, then applies
// explicitly set flags on top.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := driver.ResolveConfig(c.configPath, wd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = c.maxDepth
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("color") {
		cfg.Color = c.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Color {
		c.errOut.DisableColor()
	}
	c.cfg = cfg
	c.logger = cfg.Logger(c.stderr)
	c.logger.Debug("configuration resolved", "path", cfg.Path, "max_depth", cfg.MaxDepth)
	return nil
}

// reportedError marks an error already printed to stderr.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var rep reportedError
	return errors.As(err, &rep)
}

func (c *cli) reportError(err error) {
	c.errOut.Fprintf(c.stderr, "error: %v\n", err)
}

// fail prints err and returns it marked as reported.
func (c *cli) fail(err error) error {
	c.reportError(err)
	return reportedError{err: err}
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.stdout, format, args...)
}
