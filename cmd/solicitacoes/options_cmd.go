package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Lista os valores aceitos pelos filtros de list",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			opts, err := a.filterOptions().Load(cmd.Context(), sess)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out, opts)
			}
			fmt.Fprintf(a.out, "Solicitantes: %s\n", joinOrDash(opts.Requesters))
			fmt.Fprintf(a.out, "Filiais:      %s\n", joinOrDash(opts.Filiais))
			fmt.Fprintf(a.out, "Urgências:    %s\n", joinOrDash(opts.Urgencies))
			fmt.Fprintf(a.out, "Status:       %s\n", joinOrDash(opts.Statuses))
			return nil
		},
	}
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Lista categorias, equipamentos, serviços e urgências para abrir solicitações",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			opts, err := a.solicitationService().Options(cmd.Context(), sess)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out, opts)
			}

			fmt.Fprintf(a.out, "Filial: %s\n\n", sess.Filial)
			categories := append([]string(nil), opts.Categories...)
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Fprintf(a.out, "%s\n", c)
				for _, e := range opts.EquipmentByCategory[c] {
					fmt.Fprintf(a.out, "  %s  %s\n", e.TagEquipment, e.Name)
				}
			}
			fmt.Fprintf(a.out, "\nServiços: %s\n\nUrgências:\n", strings.Join(opts.Services, ", "))
			for _, u := range opts.Urgencies {
				fmt.Fprintf(a.out, "  %-9s %s\n", u.Value, u.Description)
			}
			return nil
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
