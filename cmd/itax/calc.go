package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

func calcCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Personal finance calculators (EMI, SIP, PPF, gratuity, GST)",
	}
	cmd.AddCommand(emiCmd(a), sipCmd(a), ppfCmd(a), gratuityCmd(a), gstCmd(a))
	return cmd
}

func parseRate(flag, s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: invalid rate %q", flag, s)
	}
	return v, nil
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-22s %s\n", label+":", value)
}

func emiCmd(a *app) *cobra.Command {
	var principal, rate string
	var months int
	var schedule bool

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Equated monthly instalment of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParseAmount(principal)
			if err != nil {
				return fmt.Errorf("--principal: %w", err)
			}
			r, err := parseRate("rate", rate)
			if err != nil {
				return err
			}
			res, err := calculation.CalculateEMI(calculation.LoanInput{
				Principal: p, AnnualRatePct: r, TenureMonths: months, IncludeSchedule: schedule,
			})
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "LOAN EMI")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			line(out, "Monthly EMI", output.FormatINR(res.MonthlyPayment))
			line(out, "Total Interest", output.FormatINR(res.TotalInterest))
			line(out, "Total Payment", output.FormatINR(res.TotalPayment))
			if schedule {
				fmt.Fprintf(out, "\n%5s %16s %16s %16s %18s\n", "Month", "EMI", "Principal", "Interest", "Balance")
				for _, row := range res.Schedule {
					fmt.Fprintf(out, "%5d %16s %16s %16s %18s\n", row.Month,
						output.FormatINR(row.Payment), output.FormatINR(row.Principal),
						output.FormatINR(row.Interest), output.FormatINR(row.ClosingBalance))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "Loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "Annual interest rate in percent")
	cmd.Flags().IntVar(&months, "months", 0, "Tenure in months")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "Print the amortization schedule")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")
	return cmd
}

func sipCmd(a *app) *cobra.Command {
	var monthly, ret string
	var years int

	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Maturity value of a monthly SIP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseAmount(monthly)
			if err != nil {
				return fmt.Errorf("--monthly: %w", err)
			}
			r, err := parseRate("return", ret)
			if err != nil {
				return err
			}
			res, err := calculation.CalculateSIP(calculation.SIPInput{MonthlyInvestment: m, AnnualReturnPct: r, Years: years})
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "SIP PROJECTION")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			line(out, "Invested", output.FormatINR(res.Invested))
			line(out, "Estimated Returns", output.FormatINR(res.EstimatedReturns))
			line(out, "Maturity Value", output.FormatINR(res.MaturityValue))
			return nil
		},
	}
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly investment")
	cmd.Flags().StringVar(&ret, "return", "12", "Expected annual return in percent")
	cmd.Flags().IntVar(&years, "years", 10, "Investment period in years")
	_ = cmd.MarkFlagRequired("monthly")
	return cmd
}

func ppfCmd(a *app) *cobra.Command {
	var deposit, rate string
	var years int
	var table bool

	cmd := &cobra.Command{
		Use:   "ppf",
		Short: "Public Provident Fund maturity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseAmount(deposit)
			if err != nil {
				return fmt.Errorf("--deposit: %w", err)
			}
			r, err := parseRate("rate", rate)
			if err != nil {
				return err
			}
			res, err := calculation.CalculatePPF(calculation.PPFInput{YearlyDeposit: d, AnnualRatePct: r, Years: years})
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "PPF MATURITY")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			line(out, "Total Deposited", output.FormatINR(res.TotalDeposited))
			line(out, "Total Interest", output.FormatINR(res.TotalInterest))
			line(out, "Maturity Value", output.FormatINR(res.MaturityValue))
			if table {
				fmt.Fprintf(out, "\n%4s %14s %14s %18s\n", "Year", "Deposit", "Interest", "Balance")
				for _, y := range res.Years {
					fmt.Fprintf(out, "%4d %14s %14s %18s\n", y.Year,
						output.FormatINR(y.Deposit), output.FormatINR(y.Interest), output.FormatINR(y.ClosingBalance))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&deposit, "deposit", "", "Yearly deposit (at most 1,50,000)")
	cmd.Flags().StringVar(&rate, "rate", "0", "Annual interest rate in percent (0 uses the current PPF rate)")
	cmd.Flags().IntVar(&years, "years", calculation.PPFMinYears, "Tenure in years (at least 15)")
	cmd.Flags().BoolVar(&table, "table", false, "Print the year-wise statement")
	_ = cmd.MarkFlagRequired("deposit")
	return cmd
}

func gratuityCmd(a *app) *cobra.Command {
	var salary string
	var years, months int
	var notCovered bool

	cmd := &cobra.Command{
		Use:   "gratuity",
		Short: "Gratuity payable on leaving service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.ParseAmount(salary)
			if err != nil {
				return fmt.Errorf("--salary: %w", err)
			}
			res, err := calculation.CalculateGratuity(calculation.GratuityInput{
				MonthlySalary: s, Years: years, Months: months, CoveredByAct: !notCovered,
			})
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "GRATUITY")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			line(out, "Qualifying Service", fmt.Sprintf("%d years", res.ServiceYears))
			if !res.Eligible {
				fmt.Fprintf(out, "Not eligible: at least %d years of service are required\n", calculation.GratuityMinYears)
				return nil
			}
			line(out, "Computed", output.FormatINR(res.Computed))
			payable := output.FormatINR(res.Payable)
			if res.Capped {
				payable += " (statutory cap)"
			}
			line(out, "Payable", payable)
			return nil
		},
	}
	cmd.Flags().StringVar(&salary, "salary", "", "Last drawn monthly basic + DA")
	cmd.Flags().IntVar(&years, "years", 0, "Completed years of service")
	cmd.Flags().IntVar(&months, "months", 0, "Additional months of service (0-11)")
	cmd.Flags().BoolVar(&notCovered, "not-covered", false, "Employer is not covered by the Payment of Gratuity Act")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func gstCmd(a *app) *cobra.Command {
	var amount, rate string
	var inclusive, interstate bool

	cmd := &cobra.Command{
		Use:   "gst",
		Short: "Add or extract GST",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := domain.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			r, err := parseRate("rate", rate)
			if err != nil {
				return err
			}
			mode := calculation.GSTExclusive
			if inclusive {
				mode = calculation.GSTInclusive
			}
			res, err := calculation.CalculateGST(calculation.GSTInput{Amount: amt, RatePct: r, Mode: mode, Interstate: interstate})
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GST @ %s%% (%s)\n", r.String(), mode)
			fmt.Fprintln(out, strings.Repeat("=", 40))
			line(out, "Taxable Value", output.FormatINR(res.BaseAmount))
			if interstate {
				line(out, "IGST", output.FormatINR(res.IGST))
			} else {
				line(out, "CGST", output.FormatINR(res.CGST))
				line(out, "SGST", output.FormatINR(res.SGST))
			}
			line(out, "Total GST", output.FormatINR(res.GSTAmount))
			line(out, "Total", output.FormatINR(res.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&rate, "rate", "18", "GST rate in percent (0, 0.25, 3, 5, 12, 18, 28)")
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "The amount already includes GST")
	cmd.Flags().BoolVar(&interstate, "interstate", false, "Inter-state supply (IGST)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
