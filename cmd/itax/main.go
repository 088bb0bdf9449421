package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has resolved settings, logger and rules
type app struct {
	flags struct {
		format   string
		rules    string
		logLevel string
		debug    bool
	}

	settings config.Settings
	logger   *zap.Logger
	engine   *calculation.Engine
	parser   *config.InputParser
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "itax",
		Short: "Indian income tax calculator",
		Long: `Compute income tax under the old and new regimes and find the cheaper one.

Examples:
  itax compute --income 15L --regime new
  itax compare --income 12,00,000 --section 80C=150000 --section 80D=25000
  itax batch profiles.yaml --format csv
  itax whatif profiles.yaml --base investor --with max_80c,max_all
  itax breakeven --income 10L
  itax calc emi --principal 50L --rate 8.5 --months 240`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.format, "format", "f", "", "Output format ("+strings.Join(output.FormatterNames(), ", ")+"); overrides ITAX_FORMAT")
	pf.StringVar(&a.flags.rules, "rules", "", "Rules YAML merged over the built-in FY rules; overrides ITAX_RULES")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides ITAX_LOG_LEVEL")
	pf.BoolVar(&a.flags.debug, "debug", false, "Log every slab of every computation")

	root.AddCommand(
		computeCmd(a),
		compareCmd(a),
		slabsCmd(a),
		breakEvenCmd(a),
		batchCmd(a),
		whatIfCmd(a),
		validateCmd(a),
		calcCmd(a),
		saveCmd(a),
		scenariosCmd(a),
		versionCmd(),
	)
	return root
}

// setup resolves settings (.env, ITAX_* variables, then flags), builds the logger
// and loads the rules every subcommand computes with
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.Format = strings.ToLower(a.flags.format)
	}
	if flags.Changed("rules") {
		s.Rules = a.flags.rules
	}
	if flags.Changed("log-level") {
		s.LogLevel = strings.ToLower(a.flags.logLevel)
	}
	if flags.Changed("debug") {
		s.Debug = a.flags.debug
	}
	if s.Debug {
		s.LogLevel = "debug"
	}
	a.settings = s

	logger, err := newLogger(s.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	engine := calculation.NewEngine()
	if s.Rules != "" {
		rules, err := config.NewInputParser().LoadRules(s.Rules)
		if err != nil {
			return err
		}
		if engine, err = calculation.NewEngineWithRules(rules); err != nil {
			return err
		}
		logger.Info("loaded rules", zap.String("path", s.Rules), zap.String("financial_year", rules.FinancialYear))
	}
	engine.SetLogger(logger.Sugar())
	engine.Debug = s.Debug
	a.engine = engine
	a.parser = config.NewInputParserWithRules(engine.Rules)

	logger.Debug("settings resolved",
		zap.String("format", s.Format),
		zap.String("log_level", s.LogLevel),
		zap.String("save_dir", s.SaveDir))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// engineFor returns an engine for the rules embedded in a configuration file
func (a *app) engineFor(cfg *domain.Configuration) (*calculation.Engine, error) {
	if cfg.Rules == nil {
		return a.engine, nil
	}
	engine, err := calculation.NewEngineWithRules(*cfg.Rules)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(a.engine.Logger)
	engine.Debug = a.engine.Debug
	return engine, nil
}

// formatter resolves the --format setting against the report formatters
func (a *app) formatter() (output.Formatter, error) {
	f := output.GetFormatterByName(a.settings.Format)
	if f == nil {
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", a.settings.Format, strings.Join(output.FormatterNames(), ", "))
	}
	return f, nil
}

// emitReport prints the report, or writes it to a timestamped file when toFile is set
func (a *app) emitReport(cmd *cobra.Command, report *output.Report, toFile bool) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	if toFile {
		path, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// isStructured reports whether the format is json or yaml, which the non-report
// commands render with output.MarshalAs
func (a *app) isStructured() bool {
	switch a.settings.Format {
	case "json", "yaml", "yml":
		return true
	}
	return false
}

func (a *app) emitStructured(cmd *cobra.Command, v interface{}) error {
	data, err := output.MarshalAs(a.settings.Format, v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func fileExtension(format string) string {
	switch format {
	case "console", "console-lite":
		return "txt"
	default:
		return format
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// no settings or rules needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
