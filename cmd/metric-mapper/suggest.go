package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"metric-mapper/internal/model"
)

func newSuggestCmd(opts *globalOptions) *cobra.Command {
	var (
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "suggest category.attribute",
		Short: "Rank the metrics that can feed an attribute slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := model.ParseSlot(args[0])
			if err != nil {
				return err
			}

			st := slot.Category.DefaultSource()
			if source != "" {
				if st, err = model.ParseSourceType(source); err != nil {
					return err
				}
			}

			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}

			printNotices(cmd.ErrOrStderr(), s.Notices())

			ranked, err := s.Suggest(slot.Category, slot.Attribute, st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ranked) == 0 {
				fmt.Fprintf(out, "no %s metric can feed %s\n", st, slot)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "property\ttype\tconversion\tscore")

			for _, c := range ranked.Top(limit) {
				fmt.Fprintf(tw, "%s.%s\t%s\t%s\t%.2f\n", st, c.Property.Name, c.Property.Type, c.Strategy, c.Score)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "element type of the metrics (default: the category's usual source)")
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of suggestions")

	return cmd
}
