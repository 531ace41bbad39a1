package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/services"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/types"
)

type listOutput struct {
	Items      []dto.SolicitationRowDTO `json:"items"`
	Pagination types.Pagination         `json:"pagination"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		filter   dto.SolicitationFilterDTO
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as solicitações visíveis para a sessão",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			resolved, err := a.filterOptions().Resolve(cmd.Context(), sess, filter)
			if err != nil {
				return err
			}

			list := a.listService(services.WithPageSize(pageSize))
			if _, err := list.Load(cmd.Context(), sess, resolved); err != nil {
				return err
			}
			result := list.Page(page)
			out := listOutput{
				Items:      services.Rows(result.Items, sess, a.now()),
				Pagination: result.Pagination,
			}

			if a.asJSON {
				return writeJSON(a.out, out)
			}
			return printRows(a, out)
		},
	}

	cmd.Flags().StringVar(&filter.StartDate, "start", "", "Data inicial (AAAA-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "Data final (AAAA-MM-DD)")
	cmd.Flags().StringSliceVar(&filter.Requester, "requester", nil, "Solicitante (pode repetir)")
	cmd.Flags().StringSliceVar(&filter.Filial, "filial", nil, "Filial (pode repetir)")
	cmd.Flags().StringSliceVar(&filter.Urgency, "urgency", nil, "Urgência (pode repetir)")
	cmd.Flags().StringSliceVar(&filter.Status, "status", nil, "Status (pode repetir)")
	cmd.Flags().IntVar(&page, "page", 1, "Página")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Itens por página (padrão: $PAGE_SIZE)")
	return cmd
}

func printRows(a *app, out listOutput) error {
	if len(out.Items) == 0 {
		fmt.Fprintln(a.out, "Nenhuma solicitação encontrada.")
		return nil
	}
	rows := make([][]string, 0, len(out.Items))
	for _, r := range out.Items {
		rows = append(rows, []string{
			strconv.Itoa(r.NumSol),
			r.Filial,
			r.UserName,
			r.CategoryService,
			r.Status,
			r.CreatedAtLabel,
			r.DaysOpenLabel,
			fmt.Sprintf("%s (%d, %s)", r.Urgency, r.UrgencySeverity, r.UrgencyBadge),
			r.CategoryEquipment,
			fmt.Sprintf("%s [%s]", r.Equipment, r.TagEquipment),
			r.ID,
		})
	}
	header := []string{"Nº", "FILIAL", "SOLICITANTE", "SERVIÇO", "STATUS", "ABERTURA", "DIAS", "URGÊNCIA", "CATEGORIA", "EQUIPAMENTO", "ID"}
	if err := writeTable(a.out, header, rows); err != nil {
		return err
	}
	p := out.Pagination
	fmt.Fprintf(a.out, "\nPágina %d de %d (%d solicitações)\n", p.Page, max(p.TotalPages, 1), p.TotalCount)
	return nil
}

// loadAndFind carrega a lista sem filtros e localiza a solicitação pelo id
// ou pelo número.
func loadAndFind(cmd *cobra.Command, sess *session.Session, list *services.SolicitationListService, ref string) (entities.Solicitation, error) {
	if _, err := list.Load(cmd.Context(), sess, dto.SolicitationFilterDTO{}); err != nil {
		return entities.Solicitation{}, err
	}
	found, ok := list.Find(ref)
	if !ok {
		return entities.Solicitation{}, fmt.Errorf("solicitação %q: %w", ref, apperrors.ErrNotFound)
	}
	return *found, nil
}
