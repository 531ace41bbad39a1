package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/pkg/customvalidator"
	"solicitation-system/pkg/utils"
)

func newCreateCmd(a *app) *cobra.Command {
	var payload dto.CreateSolicitationDTO

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Abre uma solicitação (veja os valores aceitos em options)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			created, err := a.solicitationService().Create(cmd.Context(), sess, payload)
			if err != nil {
				return err
			}
			return printSolicitation(a, "Solicitação aberta", *created)
		},
	}

	cmd.Flags().StringVar(&payload.Urgency, "urgency", "", "Urgência")
	cmd.Flags().StringVar(&payload.CategoryEquipment, "category", "", "Categoria do equipamento")
	cmd.Flags().StringVar(&payload.TagEquipment, "tag", "", "TAG do equipamento")
	cmd.Flags().StringVar(&payload.CategoryService, "service", "", "Tipo de serviço")
	cmd.Flags().StringVar(&payload.Description, "description", "", "Descrição do problema")
	return cmd
}

func newFinalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <numSol|id>",
		Short: "Finaliza uma solicitação (administrador)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			list := a.listService()
			target, err := loadAndFind(cmd, sess, list, args[0])
			if err != nil {
				return err
			}
			updated, err := list.Finalize(cmd.Context(), sess, target)
			if err != nil {
				return err
			}
			return printSolicitation(a, "Solicitação finalizada", *updated)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var status, urgency, atendedAt, prevAtendedAt string

	cmd := &cobra.Command{
		Use:   "update <numSol|id>",
		Short: "Altera status, urgência ou datas de uma solicitação (administrador)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(cmd, status, urgency, atendedAt, prevAtendedAt)
			if err != nil {
				return err
			}
			sess, err := a.session()
			if err != nil {
				return err
			}
			list := a.listService()
			target, err := loadAndFind(cmd, sess, list, args[0])
			if err != nil {
				return err
			}
			updated, err := list.Update(cmd.Context(), sess, target, patch)
			if err != nil {
				return err
			}
			return printSolicitation(a, "Solicitação atualizada", *updated)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Novo status")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Nova urgência")
	cmd.Flags().StringVar(&atendedAt, "atended-at", "", "Data de atendimento (AAAA-MM-DD ou RFC 3339)")
	cmd.Flags().StringVar(&prevAtendedAt, "prev-atended-at", "", "Previsão de atendimento (AAAA-MM-DD ou RFC 3339)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <numSol|id>",
		Short: "Exclui (logicamente) uma solicitação (administrador)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			list := a.listService()
			target, err := loadAndFind(cmd, sess, list, args[0])
			if err != nil {
				return err
			}
			if err := list.SoftDelete(cmd.Context(), sess, target, confirmerFor(a, yes)); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Solicitação nº %d excluída.\n", target.NumSol)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Não pedir confirmação")
	return cmd
}

// buildPatch só inclui as flags informadas na linha de comando.
func buildPatch(cmd *cobra.Command, status, urgency, atendedAt, prevAtendedAt string) (dto.UpdateSolicitationDTO, error) {
	var patch dto.UpdateSolicitationDTO
	flags := cmd.Flags()
	if flags.Changed("status") {
		patch.Status = utils.ToPtr(status)
	}
	if flags.Changed("urgency") {
		patch.Urgency = utils.ToPtr(urgency)
	}
	if flags.Changed("atended-at") {
		t, err := parseFlagTime(atendedAt)
		if err != nil {
			return patch, fmt.Errorf("--atended-at: %w", err)
		}
		patch.AtendedAt = &t
	}
	if flags.Changed("prev-atended-at") {
		t, err := parseFlagTime(prevAtendedAt)
		if err != nil {
			return patch, fmt.Errorf("--prev-atended-at: %w", err)
		}
		patch.PrevAtendedAt = &t
	}
	return patch, nil
}

func parseFlagTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.ParseInLocation(customvalidator.DateLayout, v, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q, use AAAA-MM-DD", v)
	}
	return t, nil
}

func printSolicitation(a *app, title string, s entities.Solicitation) error {
	if a.asJSON {
		return writeJSON(a.out, s)
	}
	fmt.Fprintf(a.out, "%s: nº %d (%s) - %s, %s [%s], status %s.\n",
		title, s.NumSol, s.ID, s.Urgency, s.Equipment, s.TagEquipment, s.Status)
	return nil
}
