package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"launchpath/internal/domain"
	"launchpath/internal/service"
)

func (c *cli) newRankCmd() *cobra.Command {
	var (
		eval      domain.Evaluation
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank business paths for a self-evaluation",
		Long: `Ranks every business path by fit for the given evaluation.
Each dimension must be between -1 and 1.

Example:
  launchpath rank --patience -1 --rejection 0.5 --build-vs-sell -1 --leverage -0.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := eval.Validate(); err != nil {
				return err
			}
			engine, err := c.engine(nil)
			if err != nil {
				return err
			}
			ranked := engine.RankPathsByFit(eval)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tPATH\tFIT\tVIABLE\tREASON")
			for i, r := range ranked {
				fmt.Fprintf(w, "%d\t%s\t%.3f\t%t\t%s\n", i+1, r.Path.ID, r.FitScore, r.FitScore > threshold, r.FitReason)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64Var(&eval.Patience, "patience", 0, "Patience (-1 needs money fast, 1 can wait)")
	cmd.Flags().Float64Var(&eval.RejectionTolerance, "rejection", 0, "Rejection tolerance (-1 avoids, 1 handles it)")
	cmd.Flags().Float64Var(&eval.BuildVsSell, "build-vs-sell", 0, "Build vs sell (-1 sell, 1 build)")
	cmd.Flags().Float64Var(&eval.Leverage, "leverage", 0, "Leverage (-1 trade time, 1 scalable)")
	cmd.Flags().Float64Var(&threshold, "threshold", service.DefaultViableThreshold, "Minimum fit score considered viable")
	return cmd
}

func (c *cli) newClassifyCmd() *cobra.Command {
	var (
		completed bool
		outcome   string
		learned   string
		direction string
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a check-in and show the resulting path adjustment",
		Long: `Classifies a check-in into a signal and looks up the adjustment for a direction.
A weak signal picks pivot or escalate at random; pass --seed for a repeatable choice.

Example:
  launchpath classify --direction client_services --completed --outcome "Landed a client" \
    --learned "This works. I need to do more."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rng service.RandomSource
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			engine, err := c.engine(rng)
			if err != nil {
				return err
			}
			if !engine.Catalog().HasPath(direction) {
				return fmt.Errorf("%w: %q", service.ErrUnknownPath, direction)
			}

			signal := service.ClassifySignal(completed, outcome, learned)
			adj := engine.DeterminePathAdjustment(signal.Type, direction, "")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "signal:      %s\n", signal.Type)
			fmt.Fprintf(out, "explanation: %s\n", signal.Explanation)
			fmt.Fprintf(out, "adjustment:  %s\n", adj.Adjustment)
			fmt.Fprintf(out, "next action: %s\n", adj.NextAction)
			return nil
		},
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "The commitment was completed")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Outcome option chosen at check-in")
	cmd.Flags().StringVar(&learned, "learned", "", "Learned option chosen at check-in")
	cmd.Flags().StringVar(&direction, "direction", "", "Path id of the current direction")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the weak-signal coin flip")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}

func (c *cli) newMilestonesCmd() *cobra.Command {
	var pathID string
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "List the milestones of a business path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := c.engine(nil)
			if err != nil {
				return err
			}
			milestones := engine.Catalog().Milestones(pathID)
			if len(milestones) == 0 {
				return errors.New("no milestones for path " + pathID)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tKEY\tCATEGORY\tTITLE")
			for _, m := range milestones {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.Sequence, m.Key, m.Category, m.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&pathID, "path", "", "Path id")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
