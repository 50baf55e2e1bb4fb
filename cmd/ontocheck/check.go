package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontocheck/internal/loader"
	"ontocheck/internal/service"
	"ontocheck/internal/watcher"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type checkOptions struct {
	ontology string
	output   string
	watch    bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <candidates-file>",
		Short: "Check candidate axioms for entailment",
		Long: `Reads candidate axioms from a YAML or JSON document and reports, for each,
whether it is entailed by the knowledge base.

The knowledge base is the axiom store unless --ontology names a document to
check against in memory. With --watch the checks re-run whenever the
candidates or the ontology file change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("unknown output format %q", opts.output)
			}
			if opts.watch && opts.ontology == "" {
				return fmt.Errorf("--watch requires --ontology")
			}
			return a.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ontology, "ontology", "", "check against this document instead of the store")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run when the files change")
	return cmd
}

func (a *app) runCheck(ctx context.Context, out io.Writer, candidatesPath string, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc := a.newService(nil)

	if err := a.loadSnapshot(ctx, svc, opts.ontology); err != nil {
		return err
	}

	failed, err := a.checkFile(ctx, svc, out, candidatesPath, opts.output)
	if err != nil {
		return err
	}
	if !opts.watch {
		if failed > 0 {
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ontologyPath, _ := filepath.Abs(opts.ontology)
	w := watcher.New([]string{opts.ontology, candidatesPath}, func(path string) {
		if path == ontologyPath {
			if err := a.loadSnapshot(ctx, svc, opts.ontology); err != nil {
				return
			}
		}
		if _, err := a.checkFile(ctx, svc, out, candidatesPath, opts.output); err != nil {
			a.logger.Error("Re-check failed", zap.Error(err))
		}
	}, a.logger.Named("watcher")).WithDebounce(a.cfg.Watch.Debounce.Duration())

	if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
		return a.fail("watch failed", err)
	}
	return nil
}

func (a *app) loadSnapshot(ctx context.Context, svc *service.EntailmentService, ontologyPath string) error {
	var (
		snap service.Snapshot
		err  error
	)
	if ontologyPath != "" {
		doc, lerr := loader.LoadFile(ontologyPath)
		if lerr != nil {
			return a.fail("failed to load ontology", lerr, zap.String("path", ontologyPath))
		}
		snap, err = service.DocumentSnapshot(doc, ontologyPath, a.cfg.Reasoner, a.logger.Named("reasoner"))
	} else {
		repo, oerr := a.openStore()
		if oerr != nil {
			return oerr
		}
		snap, err = service.StoreSnapshot(ctx, repo, a.cfg.Database.Path, a.cfg.Reasoner, a.logger.Named("reasoner"))
	}
	if err != nil {
		return a.fail("failed to build snapshot", err)
	}
	return svc.Reload(snap)
}

func (a *app) checkFile(ctx context.Context, svc *service.EntailmentService, out io.Writer, path, output string) (int, error) {
	doc, err := loader.LoadFile(path)
	if err != nil {
		return 0, a.fail("failed to load candidates", err, zap.String("path", path))
	}

	verdicts := svc.CheckAll(ctx, doc.Axioms)
	failed := 0
	for _, v := range verdicts {
		if v.Err != nil {
			failed++
			a.logger.Error("Check failed", zap.String("axiom", v.Key), zap.Error(v.Err))
		}
		if err := writeVerdict(out, v, output); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

type verdictLine struct {
	Axiom    string `json:"axiom"`
	Kind     string `json:"kind"`
	Entailed bool   `json:"entailed"`
	Error    string `json:"error,omitempty"`
}

func writeVerdict(out io.Writer, v service.Verdict, output string) error {
	if output == outputJSON {
		line := verdictLine{Axiom: v.Key, Entailed: v.Entailed}
		if v.Axiom != nil {
			line.Kind = v.Axiom.Kind().String()
		}
		if v.Err != nil {
			line.Error = v.Err.Error()
		}
		return json.NewEncoder(out).Encode(line)
	}

	var err error
	switch {
	case v.Err != nil:
		_, err = fmt.Fprintf(out, "ERROR\t%s\t%v\n", v.Key, v.Err)
	case v.Entailed:
		_, err = fmt.Fprintf(out, "ENTAILED\t%s\n", v.Key)
	default:
		_, err = fmt.Fprintf(out, "NOT ENTAILED\t%s\n", v.Key)
	}
	return err
}
