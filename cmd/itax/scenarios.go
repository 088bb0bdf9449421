package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/scenario"
)

func saveCmd(a *app) *cobra.Command {
	var in incomeFlags
	var dir string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Compare regimes and save the result as a scenario snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := in.profile(cmd, a)
			if err != nil {
				return err
			}
			cmp := a.engine.CompareProfile(p)
			snap := scenario.NewSnapshot(a.engine.Rules.FinancialYear, p, cmp)

			path, err := scenario.NewStore(a.saveDir(dir)).Save(snap)
			if err != nil {
				return err
			}
			a.logger.Sugar().Infof("saved snapshot %s", snap.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s): %s recommended, saves %s\n%s\n",
				snap.Name, snap.ID, cmp.RecommendedRegime.Label(), output.FormatINR(cmp.AbsoluteSavings), path)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&in.name, "name", "", "Scenario name")
	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default ITAX_SAVE_DIR or ./scenarios)")
	return cmd
}

func scenariosCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List, show or delete saved scenario snapshots",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Snapshot directory (default ITAX_SAVE_DIR or ./scenarios)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := scenario.NewStore(a.saveDir(dir)).List()
			if err != nil {
				return err
			}
			if a.isStructured() {
				return a.emitStructured(cmd, snaps)
			}
			out := cmd.OutOrStdout()
			if len(snaps) == 0 {
				fmt.Fprintln(out, "No saved scenarios")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-20s  %-16s  %-10s  %s\n", "ID", "Saved", "Name", "Best", "Saves")
			fmt.Fprintln(out, strings.Repeat("-", 100))
			for _, s := range snaps {
				fmt.Fprintf(out, "%-36s  %-20s  %-16s  %-10s  %s\n",
					s.ID, s.SavedAt.Format("2006-01-02 15:04:05"), s.Name,
					s.Comparison.RecommendedRegime.Label(), output.FormatINR(s.Comparison.AbsoluteSavings))
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a saved snapshot as a regime comparison report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
			}
			snap, err := scenario.NewStore(a.saveDir(dir)).Load(id)
			if err != nil {
				return err
			}
			return a.emitReport(cmd, output.NewReport(snap.FinancialYear, snap.Comparison).WithRules(a.engine.Rules), false)
		},
	}

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
			}
			if err := scenario.NewStore(a.saveDir(dir)).Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

func (a *app) saveDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.settings.SaveDir
}
