package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solicitation-system/internal/entities"
	"solicitation-system/internal/integrations/backend"
	"solicitation-system/internal/listeners"
	"solicitation-system/internal/repositories"
	"solicitation-system/internal/services"
	"solicitation-system/pkg/config"
	"solicitation-system/pkg/customvalidator"
	"solicitation-system/pkg/eventbus"
	applogger "solicitation-system/pkg/logger"
	"solicitation-system/pkg/session"
)

// app reúne o que os comandos compartilham; é montado no
// PersistentPreRunE, depois da leitura das flags.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	bus      *eventbus.Bus
	validate *validator.Validate
	now      func() time.Time

	token   string
	baseURL string
	asJSON  bool

	in  io.Reader
	out io.Writer

	solicitations repositories.SolicitationRepositoryInterface
	historic      repositories.HistoricRepositoryInterface
	users         repositories.ReferenceRepositoryInterface[entities.User]
	filiais       repositories.ReferenceRepositoryInterface[entities.Filial]
	equipments    repositories.ReferenceRepositoryInterface[entities.Equipment]
	categories    repositories.ReferenceRepositoryInterface[entities.EquipmentCategory]
	auth          repositories.AuthRepositoryInterface
}

func (a *app) setup() {
	a.cfg = config.New()
	if a.baseURL == "" {
		a.baseURL = a.cfg.API.BaseURL
	}
	if a.token == "" {
		a.token = a.cfg.API.Token
	}

	a.logger = applogger.NewLogger(a.cfg.Log)
	a.bus = eventbus.New(a.logger)
	listeners.NewAuditListener(a.logger).Register(a.bus)
	a.validate = customvalidator.New()

	client := backend.NewClient(a.baseURL, a.cfg.API.Timeout, a.logger)
	a.solicitations = repositories.NewSolicitationRepository(client, a.logger)
	a.historic = repositories.NewHistoricRepository(client, a.logger)
	a.users = repositories.NewUserRepository(client, a.logger)
	a.filiais = repositories.NewFilialRepository(client, a.logger)
	a.equipments = repositories.NewEquipmentRepository(client, a.logger)
	a.categories = repositories.NewEquipmentCategoryRepository(client, a.logger)
	a.auth = repositories.NewAuthRepository(client, a.logger)
}

func (a *app) teardown() {
	if a.bus != nil {
		a.bus.Wait()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// session decodifica o token informado; nada é guardado em disco.
func (a *app) session() (*session.Session, error) {
	sess, err := session.Decode(a.token)
	if err != nil {
		return nil, err
	}
	if sess.Expired(a.now()) {
		a.logger.Warn("token vencido; o backend deve recusá-lo", zap.Timep("expiresAt", sess.ExpiresAt))
	}
	return sess, nil
}

func (a *app) listService(extra ...services.ListOption) *services.SolicitationListService {
	opts := append([]services.ListOption{
		services.WithClock(a.now),
		services.WithPageSize(a.cfg.List.PageSize),
	}, extra...)
	return services.NewSolicitationListService(a.solicitations, a.historic, nil, a.bus, a.validate, a.logger, opts...)
}

func (a *app) solicitationService() *services.SolicitationService {
	return services.NewSolicitationService(a.solicitations, a.historic, a.equipments, a.categories, nil, a.bus, a.validate, a.logger)
}

func (a *app) filterOptions() *services.FilterOptionsService {
	return services.NewFilterOptionsService(a.users, a.filiais, a.logger)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "solicitacoes",
		Short:         "Cliente de linha de comando das solicitações de manutenção",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	cmd.PersistentFlags().StringVar(&a.token, "token", "", "Token de acesso (padrão: $SOLICITACOES_TOKEN)")
	cmd.PersistentFlags().StringVar(&a.baseURL, "api", "", "URL base do backend (padrão: $API_BASE_URL)")
	cmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Saída em JSON")

	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newFiltersCmd(a))
	cmd.AddCommand(newOptionsCmd(a))
	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newFinalizeCmd(a))
	cmd.AddCommand(newUpdateCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newRefsCmd(a))
	return cmd
}

func newApp() *app {
	return &app{now: time.Now, in: os.Stdin, out: os.Stdout}
}

func Execute() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		a.teardown()
		fmt.Fprintln(os.Stderr, strings.TrimSpace(userMessage(err)))
		os.Exit(exitCode(err))
	}
}
