package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/mapping"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check mapping-file",
		Short: "Validate a mapping file",
		Long: `check loads a mapping file and validates its structure. When a settings
file or property catalog is configured, the bindings are also replayed
against them and stale bindings are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mapping.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if dump {
				cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				cfg.Fdump(out, doc)
			}

			notes := mapping.Validate(doc)

			if opts.settingsPath != "" || opts.catalogPath != "" {
				s, err := opts.openSession(cmd)
				if err != nil {
					return err
				}

				printNotices(cmd.ErrOrStderr(), s.Notices())
				notes.Merge(s.Apply(doc))
			}

			printNotices(out, *notes)

			if err := notes.Error(); err != nil {
				return fmt.Errorf("%s is invalid: %w", args[0], err)
			}

			fmt.Fprintf(out, "%s: %d binding(s), %d resource(s), %s\n",
				args[0], doc.Len(), len(doc.Resources), summary(*notes))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the parsed document")

	return cmd
}

func summary(d diagnostic.Diagnostics) string {
	if d.Len() == 0 {
		return "ok"
	}

	return fmt.Sprintf("%d warning(s), %d note(s)", len(d.Warnings), len(d.Infos))
}
