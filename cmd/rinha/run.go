package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/driver"
	"rinha/interpreter-go/pkg/interpreter"
)

func (c *cli) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.json>",
		Short: "Evaluate a program",
		Long: `Evaluate a program and write everything it prints to stdout. Output
printed before a runtime error is flushed before the error is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProgram(args[0])
		},
	}
}

func (c *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <program.json>",
		Short: "Print a program as source text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := driver.LoadProgram(args[0])
			if err != nil {
				return err
			}
			c.printf("%s\n", ast.Render(file.Expression))
			return nil
		},
	}
}

func (c *cli) runProgram(path string) error {
	file, err := driver.LoadProgram(path)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(c.stdout)
	interp := interpreter.New(interpreter.Options{
		Out:      out,
		Logger:   c.logger,
		MaxDepth: c.cfg.MaxDepth,
	})
	_, runErr := interp.Run(file)
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}
	if runErr != nil {
		c.logger.Debug("run failed", "program", path, "error", runErr)
		return c.fail(runErr)
	}
	return nil
}
