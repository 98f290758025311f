package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rinha/interpreter-go/pkg/fixtures"
)

func (c *cli) testCommand() *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "test [fixtures-dir]",
		Short: "Run golden fixtures",
		Long: `Run every fixture below the directory (default: the fixtures setting of
rinha.yml). A fixture is a directory holding program.json and manifest.yml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := c.cfg.Fixtures
			if len(args) == 1 {
				root = args[0]
			}
			results, err := fixtures.RunAll(cmd.Context(), root, fixtures.Options{
				MaxDepth: c.cfg.MaxDepth,
				Logger:   c.logger,
				Jobs:     jobs,
			})
			if err != nil {
				return err
			}
			return c.reportFixtures(results)
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "fixtures evaluated in parallel")
	return cmd
}

func (c *cli) reportFixtures(results []fixtures.Result) error {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	skip := color.New(color.FgYellow)
	if !c.cfg.Color {
		for _, col := range []*color.Color{pass, fail, skip} {
			col.DisableColor()
		}
	}

	var passed, failed, skipped int
	for _, res := range results {
		switch {
		case res.Skipped:
			skipped++
			skip.Fprint(c.stdout, "SKIP")
			c.printf(" %s\n", res.Name)
		case res.Passed():
			passed++
			pass.Fprint(c.stdout, "PASS")
			c.printf(" %s\n", res.Name)
		default:
			failed++
			fail.Fprint(c.stdout, "FAIL")
			c.printf(" %s\n", res.Name)
			for _, failure := range res.Failures {
				c.printf("    %s\n", strings.ReplaceAll(failure, "\n", "\n    "))
			}
		}
	}
	c.printf("%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return c.fail(fmt.Errorf("%d fixture(s) failed", failed))
	}
	return nil
}
