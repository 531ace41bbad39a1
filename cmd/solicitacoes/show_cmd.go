package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solicitation-system/internal/services"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <numSol|id>",
		Short: "Mostra os detalhes de uma solicitação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			found, err := loadAndFind(cmd, sess, a.listService(), args[0])
			if err != nil {
				return err
			}

			row := services.Row(found, sess, a.now())
			if a.asJSON {
				return writeJSON(a.out, row)
			}

			atended := "-"
			if found.AtendedAt != nil {
				atended = found.AtendedAt.Local().Format("02/01/2006 15:04")
			}
			prev := "-"
			if found.PrevAtendedAt != nil {
				prev = found.PrevAtendedAt.Local().Format("02/01/2006")
			}
			return writeTable(a.out, []string{"CAMPO", "VALOR"}, [][]string{
				{"Número", fmt.Sprint(row.NumSol)},
				{"Id", row.ID},
				{"Solicitante", row.UserName},
				{"Filial", row.Filial},
				{"Centro de custo", found.CostCenter},
				{"Status", row.Status},
				{"Urgência", fmt.Sprintf("%s (%s)", row.Urgency, row.UrgencyBadge)},
				{"Serviço", row.CategoryService},
				{"Equipamento", fmt.Sprintf("%s [%s] - %s", row.Equipment, row.TagEquipment, row.CategoryEquipment)},
				{"Descrição", row.Description},
				{"Abertura", row.CreatedAtLabel},
				{"Dias em aberto", row.DaysOpenLabel},
				{"Previsão de atendimento", prev},
				{"Atendida em", atended},
			})
		},
	}
}
