package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/bgc-scaffold/internal/application/analysis"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	dto "github.com/turtacn/bgc-scaffold/pkg/types/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/types/ledger"
)

type analyzeOptions struct {
	ledgerPath string
	format     string
	limits     dto.Limits
	outcomes   bool
	refresh    bool
}

// NewAnalyzeCmd creates the analyze subcommand.
func NewAnalyzeCmd() *cobra.Command {
	o := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Assemble the scaffolds of every cluster in a domain ledger",
		Long: "Reads a JSON or YAML domain ledger, detects gene clusters and predicts the\n" +
			"core scaffolds each one can assemble.  Use --ledger - to read stdin, in\n" +
			"which case --format is required.",
		Example: "  bgcs analyze --ledger ledger.yaml -o table\n" +
			"  bgcs analyze --ledger ledger.json --max-plans 20 --outcomes -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.ledgerPath, "ledger", "l", "", "domain ledger file (.json, .yaml, .yml or - for stdin) [REQUIRED]")
	f.StringVar(&o.format, "format", "", "ledger format (json, yaml); inferred from the file extension when empty")
	f.IntVar(&o.limits.Window, "window", 0, "cluster detection window in bp")
	f.IntVar(&o.limits.MaxPermutations, "max-permutations", 0, "cap on ORF permutations per cluster")
	f.IntVar(&o.limits.MaxCyclizations, "max-cyclizations", 0, "cap on cyclization patterns per permutation")
	f.IntVar(&o.limits.MaxPlans, "max-plans", 0, "cap on combinatorial plans per cluster")
	f.IntVar(&o.limits.MaxScaffolds, "max-scaffolds", 0, "cap on retained scaffolds per cluster")
	f.BoolVar(&o.outcomes, "outcomes", false, "include per-plan reaction outcomes")
	f.BoolVar(&o.refresh, "refresh", false, "ignore any cached result")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runAnalyze(cmd *cobra.Command, o *analyzeOptions) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	l, err := readLedger(cmd.InOrStdin(), o.ledgerPath, o.format)
	if err != nil {
		return err
	}

	svc, err := cc.Service()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			cc.Logger.Warn("service close failed", logging.Err(cerr))
		}
	}()

	ctx := cmd.Context()
	if cc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.Timeout)
		defer cancel()
	}

	res, err := svc.Analyze(ctx, &analysis.AnalyzeInput{
		Ledger:   l,
		Limits:   o.limits,
		Outcomes: o.outcomes,
		Refresh:  o.refresh,
	})
	if err != nil {
		return err
	}

	if stages := res.Diagnostics.TruncatedStages(); len(stages) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: enumeration truncated at %s\n", strings.Join(stages, ", "))
	}

	if cc.OutputFormat == OutputJSON || cc.OutputFormat == OutputYAML {
		return PrintResult(cmd, res)
	}
	return PrintResult(cmd, analysisView{res})
}

// readLedger decodes path, or stdin for "-".
func readLedger(stdin io.Reader, path, format string) (*ledger.Ledger, error) {
	var f ledger.Format
	switch {
	case format != "":
		f = ledger.Format(strings.ToLower(format))
	case path == "-":
		return nil, errors.New(errors.ErrCodeLedgerFormat, "--format is required when reading stdin")
	default:
		var err error
		if f, err = ledger.FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	if path == "-" {
		return ledger.Decode(stdin, f)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound, "cannot open ledger").WithDetail(path)
	}
	defer file.Close()
	return ledger.Decode(file, f)
}

// ─────────────────────────────────────────────────────────────────────────────
// views
// ─────────────────────────────────────────────────────────────────────────────

type analysisView struct {
	*dto.Result
}

func (v analysisView) TableHeaders() []string {
	return []string{"CONTIG", "CLUSTER", "TYPES", "PLAN", "REACTIONS", "CYCLIZATION", "FORMULA", "SMILES"}
}

func (v analysisView) TableRows() [][]string {
	var rows [][]string
	for _, c := range v.Contigs {
		for _, cl := range c.Clusters {
			types := strings.Join(cl.Types, "+")
			if len(cl.Scaffolds) == 0 {
				rows = append(rows, []string{c.Name, strconv.Itoa(cl.Index), types, "-", "-", "-", "-", "-"})
				continue
			}
			for _, s := range cl.Scaffolds {
				rows = append(rows, []string{
					c.Name, strconv.Itoa(cl.Index), types,
					strconv.Itoa(s.Plan), strconv.Itoa(s.Reactions), s.Cyclization, s.Formula, s.SMILES,
				})
			}
		}
	}
	return rows
}

func (v analysisView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s  ledger %s", v.RunID, shortFingerprint(v.Fingerprint))
	if v.Cached {
		sb.WriteString("  (cached)")
	}
	sb.WriteString("\n")

	for _, c := range v.Contigs {
		fmt.Fprintf(&sb, "%s: %d cluster(s)\n", c.Name, len(c.Clusters))
		for _, cl := range c.Clusters {
			fmt.Fprintf(&sb, "  cluster %d  %d..%d  %s\n", cl.Index, cl.Start, cl.End, strings.Join(cl.Types, "+"))
			names := make([]string, len(cl.ORFs))
			for i, o := range cl.ORFs {
				names[i] = o.Name
			}
			fmt.Fprintf(&sb, "    orfs: %s\n", strings.Join(names, ", "))
			fmt.Fprintf(&sb, "    plans: %d  aborted: %d  scaffolds: %d\n", cl.Plans, cl.Aborted, len(cl.Scaffolds))
			for _, s := range cl.Scaffolds {
				fmt.Fprintf(&sb, "      %-14s %-16s %s\n", s.Formula, s.Cyclization, s.SMILES)
			}
		}
	}

	d := v.Diagnostics
	fmt.Fprintf(&sb, "permutations %s  cyclizations %s  plans %s  scaffolds %s\n",
		counter(d.Permutations), counter(d.Cyclizations), counter(d.Plans), counter(d.Scaffolds))
	return sb.String()
}

func counter(c dto.Counter) string {
	s := fmt.Sprintf("%d/%d", c.Kept, c.Seen)
	if c.Truncated {
		s += "!"
	}
	return s
}

func shortFingerprint(f string) string {
	if len(f) > 12 {
		return f[:12]
	}
	return f
}

//Personal.AI order the ending
