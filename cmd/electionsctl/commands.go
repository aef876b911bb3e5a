package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/elections/internal/core"
	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print turnout totals and leading parties per election",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), ds, top)
		},
	}
	cmd.Flags().IntVar(&top, "top", 3, "leading parties to list per election")
	return cmd
}

func newPartiesCmd(opts *rootOptions) *cobra.Command {
	var notable bool

	cmd := &cobra.Command{
		Use:   "parties",
		Short: "List party keys",
		Long: `Lists every party key in the dataset, or with --notable only the parties that
placed in the top ten of one of the six most recent elections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			keys := ds.AllParties
			if notable {
				keys = ds.Notable
			}
			w := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintln(w, k)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&notable, "notable", false, "list only the notable party set")
	return cmd
}

func newSeriesCmd(opts *rootOptions) *cobra.Command {
	var (
		from, to   int
		parties    []string
		share      bool
		maxParties int
	)

	cmd := &cobra.Command{
		Use:   "series --party KEY [--party KEY ...]",
		Short: "Print per-election totals for up to three parties",
		Example: `  electionsctl series --party מחל --party פה --from 20
  electionsctl series --party שס --share`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(parties) == 0 {
				return fmt.Errorf("at least one --party is required: %w", core.ErrInvalidSelection)
			}
			if len(parties) > maxParties {
				return fmt.Errorf("%d parties requested, at most %d allowed: %w", len(parties), maxParties, core.ErrInvalidSelection)
			}

			ds, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			r := ds.Aggregate.Span()
			if cmd.Flags().Changed("from") {
				r.Lo = core.ElectionID(from)
			}
			if cmd.Flags().Changed("to") {
				r.Hi = core.ElectionID(to)
			}

			set, err := core.Slice(ds.Aggregate, r, parties)
			if err != nil {
				return err
			}
			for _, key := range set.Rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a party in the loaded elections\n", key)
			}
			return writeSeries(cmd.OutOrStdout(), set, share)
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "first election (default: earliest loaded)")
	cmd.Flags().IntVar(&to, "to", 0, "last election (default: latest loaded)")
	cmd.Flags().StringArrayVar(&parties, "party", nil, "party key; repeat for several")
	cmd.Flags().BoolVar(&share, "share", false, "print percentages of valid ballots instead of votes")
	cmd.Flags().IntVar(&maxParties, "max-parties", 3, "most parties accepted")
	return cmd
}

func writeSummary(out io.Writer, ds *core.Dataset, top int) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ELECTION\tSTATIONS\tREGISTERED\tVOTERS\tINVALID\tVALID\tLEADERS")
	for _, e := range ds.Elections {
		t := ds.Aggregate.Turnout(e)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			e, ds.Aggregate.Stations(e), t.Registered, t.Voters, t.Invalid, t.Valid,
			strings.Join(core.TopParties(ds.Aggregate, e, top), ", "))
	}
	return w.Flush()
}

func writeSeries(out io.Writer, set *core.SeriesSet, share bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "ELECTION\t")
	for _, key := range set.Keys() {
		fmt.Fprintf(w, "%s\t", key)
	}
	fmt.Fprintln(w)

	for i, e := range set.Elections {
		fmt.Fprintf(w, "%d\t", e)
		for _, s := range set.Series {
			p := s.Points[i]
			if share {
				fmt.Fprintf(w, "%s\t", strconv.FormatFloat(p.Share, 'f', 2, 64))
			} else {
				fmt.Fprintf(w, "%d\t", p.Votes)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
