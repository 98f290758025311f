package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rinha/interpreter-go/pkg/driver"
)

func (c *cli) corpusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage git corpora of AST programs",
	}
	cmd.AddCommand(c.corpusFetchCommand(), c.corpusListCommand())
	return cmd
}

func (c *cli) corpusFetchCommand() *cobra.Command {
	var req driver.CorpusRequest
	cmd := &cobra.Command{
		Use:   "fetch <url|name>",
		Short: "Clone a corpus at a revision and print its checkout path",
		Long: `Clone a git repository of AST programs into the corpus directory. The
argument is a git URL or the name of a corpus declared in rinha.yml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.URL = args[0]
			if spec, ok := c.cfg.FindCorpus(args[0]); ok {
				req.URL = spec.URL
				if req.Rev == "" && req.Tag == "" && req.Branch == "" {
					req.Rev = spec.Rev
					req.Tag = spec.Tag
				}
			}
			dir, commit, err := driver.FetchCorpus(cmd.Context(), c.cfg.CorpusDir, req, c.logger)
			if err != nil {
				return err
			}
			programs, err := driver.DiscoverPrograms(dir)
			if err != nil {
				return err
			}
			c.logger.Info("corpus ready", "commit", commit, "programs", len(programs))
			c.printf("%s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Rev, "rev", "", "commit to check out")
	cmd.Flags().StringVar(&req.Tag, "tag", "", "tag to check out")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "branch to check out")
	return cmd
}

func (c *cli) corpusListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List corpora declared in rinha.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, spec := range c.cfg.Corpora {
				ref := spec.Rev
				if spec.Tag != "" {
					ref = "tag " + spec.Tag
				}
				if ref == "" {
					ref = "HEAD"
				}
				c.printf("%s\t%s\t%s\n", spec.Name, spec.URL, ref)
			}
			if len(c.cfg.Corpora) == 0 {
				return fmt.Errorf("no corpora declared in %s", configLabel(c.cfg))
			}
			return nil
		},
	}
}

func configLabel(cfg *driver.Config) string {
	if cfg.Path == "" {
		return driver.ConfigFileName
	}
	return cfg.Path
}
