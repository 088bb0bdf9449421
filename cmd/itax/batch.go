package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/transform"
)

func batchCmd(a *app) *cobra.Command {
	var toFile bool

	cmd := &cobra.Command{
		Use:   "batch [input-file]",
		Short: "Compare regimes for every profile in a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, err := a.engineFor(cfg)
			if err != nil {
				return err
			}

			results, err := compare.NewCompareEngine(engine).CompareAll(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.logger.Sugar().Infof("compared %d profiles from %s", len(results), args[0])
			return a.emitReport(cmd, output.NewReport(cfg.FinancialYear, results...).WithRules(engine.Rules), toFile)
		},
	}
	cmd.Flags().BoolVar(&toFile, "write", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func whatIfCmd(a *app) *cobra.Command {
	var base, with, profiles string
	var apply []string
	var listTemplates, compact bool

	cmd := &cobra.Command{
		Use:   "whatif [input-file]",
		Short: "Compare a base profile against what-if templates or other profiles",
		Long: `Apply tax-planning moves to a base profile and show how the tax changes.

Examples:
  itax whatif profiles.yaml --base investor --with max_80c,nps_top_up
  itax whatif profiles.yaml --base investor --apply add_deduction:section=80D,amount=15000
  itax whatif profiles.yaml --base salaried --profiles investor,retiree --format csv
  itax whatif --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), templateHelp(transform.CreateBuiltInTemplates(transform.Caps(a.engine.Rules.DeductionCaps))))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required (use --list-templates to see available templates)")
			}

			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if base == "" {
				base = cfg.Profiles[0].Name
			}
			engine, err := a.engineFor(cfg)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)

			var set *compare.ComparisonSet
			if profiles != "" || (with == "" && len(apply) == 0) {
				set, err = ce.CompareProfiles(cmd.Context(), cfg, base, splitList(profiles))
			} else {
				templates := splitList(with)
				if len(apply) > 0 {
					custom, err := customTemplate(transform.Caps(engine.Rules.DeductionCaps), apply)
					if err != nil {
						return err
					}
					ce.TemplateRegistry.Register(custom)
					templates = append(templates, custom.Name)
				}
				set, err = ce.CompareTemplates(cmd.Context(), cfg, compare.CompareOptions{
					BaseProfileName: base,
					Templates:       templates,
				})
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			return writeComparisonSet(cmd, a.settings.Format, set, compact)
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base profile name (default: the first profile)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated what-if templates")
	cmd.Flags().StringArrayVar(&apply, "apply", nil, "Ad-hoc transform, e.g. add_deduction:section=80C,amount=50000 (repeatable)")
	cmd.Flags().StringVar(&profiles, "profiles", "", "Comma-separated profiles to compare with the base (default: all others)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in what-if templates")
	cmd.Flags().BoolVar(&compact, "compact", false, "One-line summary (table format only)")
	return cmd
}

// customTemplate bundles --apply transforms into a template named "custom"
func customTemplate(caps transform.Caps, specs []string) (transform.Template, error) {
	registry := transform.NewTransformRegistry(caps)
	t := transform.Template{Name: "custom"}
	var descriptions []string
	for _, spec := range specs {
		pt, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return t, fmt.Errorf("--apply %s: %w (available: %s)", spec, err, strings.Join(registry.List(), ", "))
		}
		t.Transforms = append(t.Transforms, pt)
		descriptions = append(descriptions, pt.Description())
	}
	t.Description = strings.Join(descriptions, "; ")
	return t, nil
}

func writeComparisonSet(cmd *cobra.Command, format string, set *compare.ComparisonSet, compact bool) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case "yaml", "yml":
		s, err := (&compare.YAMLFormatter{}).Format(set)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	case "table", "console", "console-lite", "text", "":
		tf := &compare.TableFormatter{}
		if compact {
			fmt.Fprintln(out, tf.FormatCompact(set))
		} else {
			fmt.Fprint(out, tf.Format(set))
		}
	default:
		return fmt.Errorf("unknown output format for whatif: %s (valid: table, csv, json, yaml)", format)
	}
	return nil
}

func templateHelp(registry *transform.TemplateRegistry) string {
	var sb strings.Builder
	sb.WriteString("Available what-if templates:\n\n")
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", name, t.Description))
	}
	sb.WriteString("\nAd-hoc transforms for --apply:\n")
	for _, name := range transform.NewTransformRegistry(nil).List() {
		sb.WriteString("  " + name + "\n")
	}
	return sb.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d profiles, FY %s)\n",
				args[0], len(cfg.Profiles), cfg.FinancialYear)
			return nil
		},
	}
}
