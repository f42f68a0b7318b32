package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/editor"
	"metric-mapper/internal/model"
)

func printNotices(w io.Writer, notices diagnostic.Diagnostics) {
	for _, n := range notices.All() {
		fmt.Fprintf(w, "%s: %s\n", n.Severity, n)
	}
}

// printSlots lists every displayed slot with its state, in display order.
func printSlots(w io.Writer, s *editor.Session) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, c := range model.Categories() {
		for _, a := range s.AttributeSlots(c) {
			slot := model.Slot{Category: c, Attribute: a.Name}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", slot, a.Type, s.Binding(slot))
		}
	}

	if res := s.Resources(); len(res) > 0 {
		fmt.Fprintf(tw, "resources\t%v\t\n", res)
	}

	tw.Flush()
}
