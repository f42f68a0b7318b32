package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"metric-mapper/internal/editor"
	"metric-mapper/internal/mapping"
	"metric-mapper/internal/model"
)

type editOptions struct {
	from          string
	out           string
	binds         []string
	resourceBinds []string
	resources     []string
	unbinds       []string
	dropResources []string
	strict        bool
}

func newEditCmd(opts *globalOptions) *cobra.Command {
	eo := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Bind metrics and resources to attribute slots and save the mapping file",
		Long: `edit opens an editing session, optionally loads an existing mapping file,
applies the requested changes in order (resources, binds, resource binds,
unbinds, resource removals), prints the slot states and saves the result.

Rejected changes leave the session unchanged and are reported as notices.`,
		Example: `  metric-mapper edit --settings settings.yaml --catalog metrics.yaml \
    --bind cellar.height=method.LLOC --resource stone \
    --bind-resource cellar.character=stone --out mapping.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}

			return runEdit(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, eo)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&eo.from, "from", "", "existing mapping file to start from")
	flags.StringVarP(&eo.out, "out", "o", "", "mapping file to write (.yaml or .xml)")
	flags.StringArrayVar(&eo.binds, "bind", nil, "bind category.attribute=source.property (repeatable)")
	flags.StringArrayVar(&eo.resourceBinds, "bind-resource", nil, "bind category.attribute=resource (repeatable)")
	flags.StringArrayVar(&eo.resources, "resource", nil, "add a resource tag (repeatable)")
	flags.StringArrayVar(&eo.unbinds, "unbind", nil, "clear category.attribute (repeatable)")
	flags.StringArrayVar(&eo.dropResources, "remove-resource", nil, "remove a resource tag and its bindings (repeatable)")
	flags.BoolVar(&eo.strict, "strict", false, "fail without saving when any change is rejected")

	return cmd
}

func runEdit(out, errOut io.Writer, s *editor.Session, eo *editOptions) error {
	if eo.from != "" {
		doc, err := mapping.Load(eo.from)
		if err != nil {
			return err
		}

		s.Apply(doc)
	}

	cmds, err := eo.commands()
	if err != nil {
		return err
	}

	rejected := 0

	for _, c := range cmds {
		if res := s.Handle(c); !res.OK() {
			rejected++
		}
	}

	printNotices(errOut, s.Notices())
	printSlots(out, s)

	if eo.strict && rejected > 0 {
		return fmt.Errorf("%d change(s) rejected, nothing saved", rejected)
	}

	if eo.out == "" {
		return nil
	}

	if err := s.Save(eo.out); err != nil {
		return err
	}

	fmt.Fprintf(out, "saved %s\n", eo.out)

	return nil
}

// commands turns the flags into session commands in application order.
func (eo *editOptions) commands() ([]editor.Command, error) {
	var cmds []editor.Command

	for _, id := range eo.resources {
		cmds = append(cmds, editor.AddResourceCommand{Resource: id})
	}

	for _, arg := range eo.binds {
		slot, rhs, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}

		ref, err := model.ParsePropertyRef(rhs)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, editor.BindCommand{Slot: slot, Property: ref})
	}

	for _, arg := range eo.resourceBinds {
		slot, id, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, editor.BindResourceCommand{Slot: slot, Resource: id})
	}

	for _, arg := range eo.unbinds {
		slot, err := model.ParseSlot(arg)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, editor.UnbindCommand{Slot: slot})
	}

	for _, id := range eo.dropResources {
		cmds = append(cmds, editor.RemoveResourceCommand{Resource: id})
	}

	return cmds, nil
}

func splitAssignment(arg string) (model.Slot, string, error) {
	lhs, rhs, ok := strings.Cut(arg, "=")
	if !ok || rhs == "" {
		return model.Slot{}, "", errors.New("want category.attribute=value, got " + arg)
	}

	slot, err := model.ParseSlot(lhs)
	if err != nil {
		return model.Slot{}, "", err
	}

	return slot, rhs, nil
}
