package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/services"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/session"
	"solicitation-system/pkg/types"
)

// refKind expõe um cadastro aos subcomandos de refs sem que eles conheçam
// os DTOs de cada tipo.
type refKind interface {
	list(ctx context.Context, sess *session.Session, includeInactive bool, page int) (types.Page[entities.Reference], error)
	create(ctx context.Context, sess *session.Session, fields map[string]string) (entities.Reference, error)
	edit(ctx context.Context, sess *session.Session, ref string, fields map[string]string) error
	deactivate(ctx context.Context, sess *session.Session, ref string, confirmer services.Confirmer) error
}

type refAdapter[T entities.Reference, C any, U any] struct {
	svc *services.ReferenceService[T, C, U]
}

func (r refAdapter[T, C, U]) list(ctx context.Context, sess *session.Session, includeInactive bool, page int) (types.Page[entities.Reference], error) {
	items, err := r.svc.List(ctx, sess, includeInactive)
	if err != nil {
		return types.Page[entities.Reference]{}, err
	}
	p := r.svc.Page(items, page)
	out := types.Page[entities.Reference]{Pagination: p.Pagination, Items: make([]entities.Reference, 0, len(p.Items))}
	for _, item := range p.Items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (r refAdapter[T, C, U]) create(ctx context.Context, sess *session.Session, fields map[string]string) (entities.Reference, error) {
	var payload C
	if err := decodeFields(fields, &payload); err != nil {
		return nil, err
	}
	created, err := r.svc.Create(ctx, sess, payload)
	if err != nil {
		return nil, err
	}
	return *created, nil
}

func (r refAdapter[T, C, U]) find(ctx context.Context, sess *session.Session, ref string) (T, error) {
	items, err := r.svc.List(ctx, sess, true)
	if err != nil {
		var zero T
		return zero, err
	}
	item, ok := r.svc.Find(items, ref)
	if !ok {
		return item, fmt.Errorf("cadastro %q: %w", ref, apperrors.ErrNotFound)
	}
	return item, nil
}

func (r refAdapter[T, C, U]) edit(ctx context.Context, sess *session.Session, ref string, fields map[string]string) error {
	var payload U
	if err := decodeFields(fields, &payload); err != nil {
		return err
	}
	item, err := r.find(ctx, sess, ref)
	if err != nil {
		return err
	}
	return r.svc.Update(ctx, sess, item.GetID(), payload)
}

func (r refAdapter[T, C, U]) deactivate(ctx context.Context, sess *session.Session, ref string, confirmer services.Confirmer) error {
	item, err := r.find(ctx, sess, ref)
	if err != nil {
		return err
	}
	return r.svc.Deactivate(ctx, sess, item, confirmer)
}

// intFields são os campos numéricos aceitos em --set.
var intFields = map[string]bool{"levelUser": true}

// decodeFields converte pares chave=valor no DTO de destino.
func decodeFields(fields map[string]string, target any) error {
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		if intFields[k] {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return apperrors.NewValidationError(k, "deve ser um número")
			}
			doc[k] = n
			continue
		}
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

func (a *app) refKinds() map[string]refKind {
	pageSize := a.cfg.Reference.PageSize
	return map[string]refKind{
		"users":      refAdapter[entities.User, dto.CreateUserDTO, dto.UpdateUserDTO]{svc: services.NewUserService(a.users, a.validate, pageSize, a.logger)},
		"filiais":    refAdapter[entities.Filial, dto.CreateFilialDTO, dto.UpdateFilialDTO]{svc: services.NewFilialService(a.filiais, a.validate, pageSize, a.logger)},
		"equipments": refAdapter[entities.Equipment, dto.CreateEquipmentDTO, dto.UpdateEquipmentDTO]{svc: services.NewEquipmentService(a.equipments, a.validate, pageSize, a.logger)},
		"categories": refAdapter[entities.EquipmentCategory, dto.CreateEquipmentCategoryDTO, dto.UpdateEquipmentCategoryDTO]{svc: services.NewEquipmentCategoryService(a.categories, a.validate, pageSize, a.logger)},
	}
}

var refKindNames = []string{"users", "filiais", "equipments", "categories"}

func (a *app) refKind(name string) (refKind, error) {
	kind, ok := a.refKinds()[name]
	if !ok {
		return nil, fmt.Errorf("cadastro desconhecido %q (use %s)", name, strings.Join(refKindNames, ", "))
	}
	return kind, nil
}

func newRefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Cadastros auxiliares: " + strings.Join(refKindNames, ", "),
	}
	cmd.AddCommand(newRefsListCmd(a), newRefsCreateCmd(a), newRefsEditCmd(a), newRefsDeactivateCmd(a))
	return cmd
}

func newRefsListCmd(a *app) *cobra.Command {
	var (
		all  bool
		page int
	)
	cmd := &cobra.Command{
		Use:       "list <cadastro>",
		Short:     "Lista um cadastro em ordem alfabética",
		Args:      cobra.ExactArgs(1),
		ValidArgs: refKindNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			kind, err := a.refKind(args[0])
			if err != nil {
				return err
			}
			result, err := kind.list(cmd.Context(), sess, all, page)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out, result)
			}

			rows := make([][]string, 0, len(result.Items))
			for _, item := range result.Items {
				state := "ativo"
				if item.IsDeleted() {
					state = "inativo"
				}
				rows = append(rows, []string{item.GetName(), item.FilialName(), state, item.GetID()})
			}
			if err := writeTable(a.out, []string{"NOME", "FILIAL", "SITUAÇÃO", "ID"}, rows); err != nil {
				return err
			}
			p := result.Pagination
			fmt.Fprintf(a.out, "\nPágina %d de %d (%d registros)\n", p.Page, max(p.TotalPages, 1), p.TotalCount)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Incluir inativos")
	cmd.Flags().IntVar(&page, "page", 1, "Página")
	return cmd
}

func newRefsCreateCmd(a *app) *cobra.Command {
	var fields map[string]string
	cmd := &cobra.Command{
		Use:     "create <cadastro> --set campo=valor ...",
		Short:   "Cria um registro (administrador)",
		Example: "  solicitacoes refs create equipments --set name=\"Volvo FH\" --set tagEquipment=CAM-010 --set categoryEquipment=Caminhão --set filial=Campinas",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			kind, err := a.refKind(args[0])
			if err != nil {
				return err
			}
			created, err := kind.create(cmd.Context(), sess, fields)
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(a.out, created)
			}
			fmt.Fprintf(a.out, "Cadastrado: %s (%s)\n", created.GetName(), created.GetID())
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "set", nil, "Campo do cadastro (pode repetir)")
	return cmd
}

func newRefsEditCmd(a *app) *cobra.Command {
	var fields map[string]string
	cmd := &cobra.Command{
		Use:   "edit <cadastro> <id|nome> --set campo=valor ...",
		Short: "Edita um registro (administrador)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				return apperrors.ErrEmptyPatch
			}
			sess, err := a.session()
			if err != nil {
				return err
			}
			kind, err := a.refKind(args[0])
			if err != nil {
				return err
			}
			if err := kind.edit(cmd.Context(), sess, args[1], fields); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Cadastro atualizado.")
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "set", nil, "Campo a alterar (pode repetir)")
	return cmd
}

func newRefsDeactivateCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "deactivate <cadastro> <id|nome>",
		Short: "Desativa um registro (administrador)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			kind, err := a.refKind(args[0])
			if err != nil {
				return err
			}
			if err := kind.deactivate(cmd.Context(), sess, args[1], confirmerFor(a, yes)); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Cadastro desativado.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Não pedir confirmação")
	return cmd
}
