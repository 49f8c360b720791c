// Package cli implements the bgcs command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/bgc-scaffold/internal/application/analysis"
	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by -o.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
	Concurrency  int
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Timeout      time.Duration

	factory ServiceFactory
}

// ServiceFactory builds the analysis service of one invocation.
type ServiceFactory func(cc *CLIContext) (analysis.Service, error)

// DefaultServiceFactory wires the service from the loaded configuration.
func DefaultServiceFactory(cc *CLIContext) (analysis.Service, error) {
	return analysis.Build(cc.Config, nil, cc.Logger)
}

// Service builds the analysis service.  The caller closes it.
func (cc *CLIContext) Service() (analysis.Service, error) {
	return cc.factory(cc)
}

// NewRootCommand creates the root command with all global flags and
// subcommands.  A nil factory means DefaultServiceFactory.
func NewRootCommand(factory ServiceFactory) *cobra.Command {
	if factory == nil {
		factory = DefaultServiceFactory
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bgcs",
		Short: "bgc-scaffold assembles the core scaffolds of biosynthetic gene clusters",
		Long: "bgcs reads a domain ledger, groups its ORFs into gene clusters, parses\n" +
			"NRPS and PKS modules, enumerates bounded combinatorial assembly plans and\n" +
			"executes them into a library of predicted scaffold structures.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, factory)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./bgcs.yaml, ~/.bgcs/config.yaml, /etc/bgcs/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json, yaml, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "overall operation timeout (0 keeps the configured worker timeout)")
	pf.IntVar(&opts.Concurrency, "concurrency", 0, "plans executed in parallel (0 keeps the configured value)")

	cmd.AddCommand(
		NewAnalyzeCmd(),
		NewRegistryCmd(),
		NewSubstratesCmd(),
		NewVersionCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions, factory ServiceFactory) error {
	switch strings.ToLower(opts.OutputFormat) {
	case OutputText, OutputJSON, OutputYAML, OutputTable:
	default:
		return errors.Newf(errors.ErrCodeValidation, "invalid output format %q (must be text/json/yaml/table)", opts.OutputFormat)
	}

	cfg, err := initConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cc := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Timeout:      opts.Timeout,
		factory:      factory,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(logging.NewContext(ctx, logger), cliContextKey{}, cc))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	loadOpts := []config.LoadOption{config.WithDotEnv()}

	path := opts.ConfigPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		loadOpts = append(loadOpts, config.WithConfigPath(path))
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("concurrency") {
		overrides["worker.concurrency"] = opts.Concurrency
	}
	if len(overrides) > 0 {
		loadOpts = append(loadOpts, config.WithOverrides(overrides))
	}
	return config.Load(loadOpts...)
}

func findConfigFile() string {
	candidates := []string{"./bgcs.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".bgcs", "config.yaml"))
	}
	candidates = append(candidates, "/etc/bgcs/config.yaml")
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger logs to stderr so stdout stays parseable.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts the CLIContext stored by the root command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cc, nil
}

// Execute is the main entry point of the CLI.
func Execute() error {
	rootCmd := NewRootCommand(nil)
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Output
// ─────────────────────────────────────────────────────────────────────────────

type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult writes data in the format chosen by -o.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := OutputJSON
	if cc, err := GetCLIContext(cmd); err == nil {
		format = cc.OutputFormat
	}

	switch format {
	case OutputJSON:
		return printJSON(cmd, data)
	case OutputYAML:
		return printYAML(cmd, data)
	case OutputTable:
		if tp, ok := data.(tableProvider); ok {
			fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
			return nil
		}
		return printText(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printYAML(cmd *cobra.Command, data interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprint(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			colWidths[i] = max(colWidths[i], len(row[i]))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
