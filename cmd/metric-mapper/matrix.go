package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"metric-mapper/internal/compat"
)

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Print the attribute/property compatibility table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printMatrix(cmd.OutOrStdout(), compat.Standard())
		},
	}
}

func printMatrix(w io.Writer, r *compat.Resolver) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "attribute \\ property")
	for _, p := range r.PropertyTypes() {
		fmt.Fprintf(tw, "\t%s", p)
	}
	fmt.Fprintln(tw)

	for _, a := range r.AttributeTypes() {
		fmt.Fprint(tw, a)
		for _, p := range r.PropertyTypes() {
			fmt.Fprintf(tw, "\t%s", r.Resolve(a, p))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
