package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/bgc-scaffold/internal/application/analysis"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// NewRegistryCmd lists the reaction table.  Building the service checks the
// reaction, annotator and substrate registries against each other, so a
// listing is also a validation.
func NewRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "List and validate the domain type to reaction table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := withService(cmd, analysis.Service.Registry)
			if err != nil {
				return err
			}
			view := registryView(entries)
			for _, e := range view {
				if !e.Implemented {
					return errors.Newf(errors.ErrCodeImplementationLack, "reaction %s of domain %s has no implementation", e.Reaction, e.DomainType)
				}
			}
			return PrintResult(cmd, view)
		},
	}
}

// NewSubstratesCmd lists the monomer catalogue.
func NewSubstratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "substrates",
		Short: "List the substrate catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := withService(cmd, analysis.Service.Substrates)
			if err != nil {
				return err
			}
			return PrintResult(cmd, substrateView(subs))
		},
	}
}

func withService[T any](cmd *cobra.Command, fn func(analysis.Service) T) (T, error) {
	var zero T
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return zero, err
	}
	svc, err := cc.Service()
	if err != nil {
		return zero, err
	}
	defer svc.Close()
	return fn(svc), nil
}

type registryView []analysis.RegistryEntry

func (v registryView) TableHeaders() []string {
	return []string{"DOMAIN", "REACTION", "PRIORITY", "ONCE", "ANNOTATORS"}
}

func (v registryView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, e := range v {
		rows[i] = []string{e.DomainType, e.Reaction, strconv.Itoa(e.Priority), strconv.FormatBool(e.OnceOnly), strings.Join(e.Annotators, ",")}
	}
	return rows
}

func (v registryView) String() string {
	var sb strings.Builder
	for _, e := range v {
		fmt.Fprintf(&sb, "%-6s -> %-22s p%-3d %s\n", e.DomainType, e.Reaction, e.Priority, strings.Join(e.Annotators, ", "))
	}
	fmt.Fprintf(&sb, "OK: %d reactions registered and implemented\n", len(v))
	return sb.String()
}

type substrateView []analysis.SubstrateEntry

func (v substrateView) TableHeaders() []string {
	return []string{"ABBR", "NAME", "EXTENDS", "FLAGS", "TEMPLATE"}
}

func (v substrateView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, s := range v {
		rows[i] = []string{s.Abbreviation, s.Name, strconv.FormatBool(s.CanExtend), strings.Join(s.Flags, ","), s.Template}
	}
	return rows
}

func (v substrateView) String() string {
	var sb strings.Builder
	for _, s := range v {
		fmt.Fprintf(&sb, "%-10s %s\n", s.Abbreviation, s.Name)
	}
	return sb.String()
}

//Personal.AI order the ending
