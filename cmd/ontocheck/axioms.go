package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontocheck/internal/domain"
	"ontocheck/internal/loader"
)

func newAxiomsCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "axioms",
		Short: "List stored axioms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.KindUnknown
			if kind != "" {
				k, err := domain.ParseAxiomKind(kind)
				if err != nil {
					return err
				}
				filter = k
			}

			repo, err := a.openStore()
			if err != nil {
				return err
			}
			stored, err := repo.ListAxioms(cmd.Context(), filter)
			if err != nil {
				return a.fail("failed to list axioms", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FINGERPRINT\tKIND\tAXIOM")
			for _, s := range stored {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Fingerprint, s.Axiom.Kind(), s.Axiom.Key())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			a.logger.Debug("Axioms listed", zap.Int("count", len(stored)), zap.String("kind", kind))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list axioms of this kind (e.g. ClassAssertion)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var iri string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the stored axioms to an ontology document",
		Long:  "Writes every stored axiom to a YAML or JSON document, chosen by the file extension.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := loader.FormatFor(path); err != nil {
				return err
			}

			repo, err := a.openStore()
			if err != nil {
				return err
			}
			stored, err := repo.ListAxioms(cmd.Context(), domain.KindUnknown)
			if err != nil {
				return a.fail("failed to list axioms", err)
			}

			doc := domain.NewDocument()
			doc.IRI = domain.IRI(iri)
			for _, s := range stored {
				doc.AddAxiom(s.Axiom)
			}
			if err := loader.SaveFile(path, doc); err != nil {
				return a.fail("failed to write document", err, zap.String("path", path))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d axioms to %s\n", len(doc.Axioms), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&iri, "iri", "", "ontology IRI to record in the document")
	return cmd
}
