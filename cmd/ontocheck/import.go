package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontocheck/internal/loader"
	"ontocheck/internal/service"
)

func newImportCmd(a *app) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load an ontology document into the axiom store",
		Long: `Reads a YAML or JSON ontology document and stores its axioms.

By default the store's contents are replaced. With --merge, axioms already
present are kept and only new ones are added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := loader.LoadFile(path)
			if err != nil {
				return a.fail("failed to load document", err, zap.String("path", path))
			}

			repo, err := a.openStore()
			if err != nil {
				return err
			}

			result, err := service.ImportDocument(cmd.Context(), repo, doc, path, merge, nil)
			if err != nil {
				return a.fail("import failed", err, zap.String("path", path))
			}

			a.logger.Info("Ontology imported",
				zap.String("path", path),
				zap.Bool("merge", merge),
				zap.Int("added", result.Added),
				zap.Int("total", result.Total))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d axioms from %s (%d stored)\n", result.Added, path, result.Total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "add to the existing axioms instead of replacing them")
	return cmd
}
