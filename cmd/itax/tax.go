package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

func computeCmd(a *app) *cobra.Command {
	var in incomeFlags
	var regime string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute tax under one regime",
		Long: `Compute total tax payable under a single regime with the slab-by-slab breakdown.

Examples:
  itax compute --income 15L
  itax compute --income 6,00,000 --deductions 1,50,000 --regime old
  itax compute --income 12L --regime old --age 67 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := in.profile(cmd, a)
			if err != nil {
				return err
			}
			r, err := domain.ParseRegime(regime)
			if err != nil {
				return err
			}

			res := a.engine.ComputeTax(p.GrossIncome, p.TotalDeductions(), r, p.Bracket())

			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}
			switch a.settings.Format {
			case "console", "console-lite", "text", "verbose", "summary":
				_, err = cmd.OutOrStdout().Write(output.FormatResult(res, a.engine.Rules))
				return err
			}
			return fmt.Errorf("compute supports console, json and yaml output, not %q", a.settings.Format)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&regime, "regime", string(domain.RegimeNew), "Regime to compute (old, new)")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var in incomeFlags
	var toFile bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the old and new regimes for one income",
		Long: `Compute tax under both regimes and recommend the cheaper one. Ties go to the new regime.

Examples:
  itax compare --income 10L --section 80C=150000 --section 24B=200000
  itax compare --income 9,00,000 --bracket senior --format html --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := in.profile(cmd, a)
			if err != nil {
				return err
			}
			cmp := a.engine.CompareProfile(p)
			a.logger.Sugar().Infof("compared %s: recommended %s", p.Name, cmp.RecommendedRegime)
			return a.emitReport(cmd, output.NewReport(a.engine.Rules.FinancialYear, cmp).WithRules(a.engine.Rules), toFile)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&in.name, "name", "", "Name shown in the report")
	cmd.Flags().BoolVar(&toFile, "write", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func slabsCmd(a *app) *cobra.Command {
	var regime, bracket string

	cmd := &cobra.Command{
		Use:   "slabs",
		Short: "Show the slab tables in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if regime != "" && regime != string(domain.RegimeNew) && regime != string(domain.RegimeOld) {
				return fmt.Errorf("unknown regime %q (want old or new)", regime)
			}
			rules := a.engine.Rules
			if a.isStructured() {
				return a.emitStructured(cmd, rules)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TAX SLABS (FY %s)\n", rules.FinancialYear)
			fmt.Fprintln(out, strings.Repeat("=", 40))

			if regime == "" || regime == string(domain.RegimeNew) {
				writeSlabTable(out, "New Regime", rules.NewRegimeSlabs)
			}
			if regime == "" || regime == string(domain.RegimeOld) {
				brackets := []domain.AgeBracket{domain.AgeNormal, domain.AgeSenior, domain.AgeSuperSenior}
				if bracket != "" {
					b, err := domain.ParseAgeBracket(bracket)
					if err != nil {
						return err
					}
					brackets = []domain.AgeBracket{b}
				}
				for _, b := range brackets {
					writeSlabTable(out, "Old Regime, "+b.Label(), rules.SlabsFor(domain.RegimeOld, b))
				}
			}
			fmt.Fprintf(out, "Standard deduction: %s (above %s taxable)\n",
				output.FormatINRWhole(rules.StandardDeduction), output.FormatINRWhole(rules.StandardDeductionThreshold))
			fmt.Fprintf(out, "Cess: %s of tax after rebate\n", output.FormatRate(rules.CessRate))
			return nil
		},
	}
	cmd.Flags().StringVar(&regime, "regime", "", "Only show one regime (old, new)")
	cmd.Flags().StringVar(&bracket, "bracket", "", "Only show one old-regime age bracket")
	return cmd
}

func writeSlabTable(w io.Writer, title string, slabs domain.SlabTable) {
	fmt.Fprintf(w, "\n%s\n", strings.ToUpper(title))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	lower := decimal.Zero
	for _, s := range slabs {
		line := domain.SlabLine{Lower: lower, Upper: s.UpperBound, Unbounded: s.Unbounded}
		fmt.Fprintf(w, "  %-28s %6s\n", output.SlabRange(line), output.FormatRate(s.Rate))
		lower = s.UpperBound
	}
	fmt.Fprintln(w)
}

func breakEvenCmd(a *app) *cobra.Command {
	var income, ceiling, from, to, step, bracket string
	var age int

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the deductions at which the old regime becomes cheaper",
		Long: `Search for the smallest old-regime deduction that makes the old regime strictly cheaper
than the new regime.

Examples:
  itax breakeven --income 10L
  itax breakeven --income 15L --bracket senior --format json
  itax breakeven --from 8L --to 20L --step 2L`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ageBracket := domain.AgeNormal
			if bracket != "" {
				b, err := domain.ParseAgeBracket(bracket)
				if err != nil {
					return err
				}
				ageBracket = b
			}
			if cmd.Flags().Changed("age") {
				if age < 0 {
					return fmt.Errorf("--age cannot be negative")
				}
				ageBracket = domain.AgeBracketForAge(age)
			}

			solver := breakeven.NewDefaultSolver(a.engine)
			ctx := cmd.Context()
			table := &breakeven.TableFormatter{}
			structured := &breakeven.JSONFormatter{Pretty: true}

			if from != "" || to != "" {
				lo, hi, st, err := parseSweep(from, to, step)
				if err != nil {
					return err
				}
				results, err := solver.Sweep(ctx, lo, hi, st, ageBracket)
				if err != nil {
					return err
				}
				switch a.settings.Format {
				case "json":
					s, err := structured.FormatSweep(results)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), s)
					return nil
				case "yaml", "yml":
					return a.emitStructured(cmd, results)
				}
				fmt.Fprint(cmd.OutOrStdout(), table.FormatSweep(results))
				return nil
			}

			if income == "" {
				return fmt.Errorf("--income or --from/--to is required")
			}
			gross, err := domain.ParseAmount(income)
			if err != nil {
				return fmt.Errorf("--income: %w", err)
			}
			req := breakeven.Request{GrossIncome: gross, AgeBracket: ageBracket}
			if ceiling != "" {
				c, err := domain.ParseAmount(ceiling)
				if err != nil {
					return fmt.Errorf("--ceiling: %w", err)
				}
				req.Ceiling = &c
			}

			result, err := solver.BreakEvenDeductions(ctx, req)
			if err != nil {
				return err
			}
			switch a.settings.Format {
			case "json":
				s, err := structured.Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			case "yaml", "yml":
				return a.emitStructured(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Format(result))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "Gross annual income")
	cmd.Flags().StringVar(&ceiling, "ceiling", "", "Largest deduction to consider (default: the income)")
	cmd.Flags().StringVar(&from, "from", "", "Sweep: first income")
	cmd.Flags().StringVar(&to, "to", "", "Sweep: last income")
	cmd.Flags().StringVar(&step, "step", "1L", "Sweep: income step")
	cmd.Flags().StringVar(&bracket, "bracket", "", "Age bracket (normal, senior, super_senior)")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years; overrides --bracket")
	return cmd
}

func parseSweep(from, to, step string) (lo, hi, st decimal.Decimal, err error) {
	if from == "" || to == "" {
		return lo, hi, st, fmt.Errorf("--from and --to must be given together")
	}
	if lo, err = domain.ParseAmount(from); err != nil {
		return lo, hi, st, fmt.Errorf("--from: %w", err)
	}
	if hi, err = domain.ParseAmount(to); err != nil {
		return lo, hi, st, fmt.Errorf("--to: %w", err)
	}
	if st, err = domain.ParseAmount(step); err != nil {
		return lo, hi, st, fmt.Errorf("--step: %w", err)
	}
	return lo, hi, st, nil
}
