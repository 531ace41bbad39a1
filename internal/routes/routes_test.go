package routes

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/entities"
	"solicitation-system/internal/integrations/backend"
	"solicitation-system/internal/repositories"
	"solicitation-system/internal/services"
	"solicitation-system/internal/store"
	"solicitation-system/pkg/config"
	"solicitation-system/pkg/constants"
	"solicitation-system/pkg/customvalidator"
	apperrors "solicitation-system/pkg/errors"
	"solicitation-system/pkg/eventbus"
	"solicitation-system/pkg/service"
	"solicitation-system/pkg/session"
	"solicitation-system/seeders"
)

// ContractTestSuite sobe o backend de desenvolvimento em um httptest.Server
// e o exercita pelo cliente real.
type ContractTestSuite struct {
	suite.Suite
	server *httptest.Server
	client backend.ClientInterface
	bus    *eventbus.Bus

	solicitations repositories.SolicitationRepositoryInterface
	historic      repositories.HistoricRepositoryInterface
	auth          *services.AuthService
	create        *services.SolicitationService
	filials       *services.FilialService
	users         *services.UserService
	filterOptions *services.FilterOptionsService

	admin     *session.Session
	requester *session.Session
}

func (s *ContractTestSuite) SetupTest() {
	ctx := context.Background()
	nop := zap.NewNop()

	st := store.NewMemoryStore()
	s.Require().NoError(seeders.Seed(ctx, st, nop))

	e := echo.New()
	e.Validator = customvalidator.NewEchoValidator(customvalidator.New())
	cfg := &config.Config{Server: config.ServerConfig{BasePath: "/api"}}
	InitRouter(e, st, service.NewJWTService("segredo-de-teste", time.Hour, nop), nop, cfg)

	s.server = httptest.NewServer(e)
	s.client = backend.NewClient(s.server.URL+"/api", 5*time.Second, nop)
	s.bus = eventbus.New(nop)

	v := customvalidator.New()
	s.solicitations = repositories.NewSolicitationRepository(s.client, nop)
	s.historic = repositories.NewHistoricRepository(s.client, nop)
	userRepo := repositories.NewUserRepository(s.client, nop)
	filialRepo := repositories.NewFilialRepository(s.client, nop)

	s.auth = services.NewAuthService(repositories.NewAuthRepository(s.client, nop), v, nop)
	s.create = services.NewSolicitationService(
		s.solicitations, s.historic,
		repositories.NewEquipmentRepository(s.client, nop),
		repositories.NewEquipmentCategoryRepository(s.client, nop),
		nil, s.bus, v, nop,
	)
	s.filials = services.NewFilialService(filialRepo, v, 10, nop)
	s.users = services.NewUserService(userRepo, v, 10, nop)
	s.filterOptions = services.NewFilterOptionsService(userRepo, filialRepo, nop)

	var err error
	s.admin, err = s.auth.Login(ctx, dto.LoginDTO{Email: seeders.AdminEmail, Password: seeders.AdminPassword})
	s.Require().NoError(err)
	s.requester, err = s.auth.Login(ctx, dto.LoginDTO{Email: seeders.RequesterEmail, Password: seeders.RequesterPassword})
	s.Require().NoError(err)
}

func (s *ContractTestSuite) TearDownTest() {
	s.bus.Wait()
	s.server.Close()
}

func (s *ContractTestSuite) newList() *services.SolicitationListService {
	return services.NewSolicitationListService(s.solicitations, s.historic, nil, s.bus, nil, zap.NewNop())
}

func (s *ContractTestSuite) submit(sess *session.Session, tag string) *entities.Solicitation {
	created, err := s.create.Create(context.Background(), sess, dto.CreateSolicitationDTO{
		Urgency:           "alta",
		CategoryEquipment: "Caminhão",
		TagEquipment:      tag,
		CategoryService:   "mecanico",
		Description:       "Vazamento de óleo no motor",
	})
	s.Require().NoError(err)
	return created
}

func (s *ContractTestSuite) TestLogin() {
	s.Equal(session.RoleAdministrator, s.admin.Role)
	s.Equal("Campinas", s.admin.Filial)
	s.Equal(session.RoleRequester, s.requester.Role)
	s.NotNil(s.requester.ExpiresAt)

	_, err := s.auth.Login(context.Background(), dto.LoginDTO{Email: seeders.AdminEmail, Password: "senha-errada"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *ContractTestSuite) TestCreateAssignsSequentialNumbers() {
	first := s.submit(s.requester, "CAM-001")
	second := s.submit(s.requester, "CAM-002")

	s.Equal(1, first.NumSol)
	s.Equal(2, second.NumSol)
	s.NotEmpty(first.ID)
	s.False(first.CreatedAt.IsZero())
	s.Equal("Volvo FH 540", first.Equipment)
	s.Equal(constants.StatusPendente, first.Status)
	s.Equal("Alta", first.Urgency)
	s.Equal("João Solicitante", first.UserName)

	last, err := s.solicitations.Last(context.Background(), s.admin.Token)
	s.Require().NoError(err)
	s.Equal(2, last)

	historic, err := s.historic.List(context.Background(), s.admin.Token)
	s.Require().NoError(err)
	s.Len(historic, 2)
}

func (s *ContractTestSuite) TestCreateRejectsInactiveEquipment() {
	_, err := s.create.Create(context.Background(), s.requester, dto.CreateSolicitationDTO{
		Urgency:           "Baixa",
		CategoryEquipment: "Caminhão",
		TagEquipment:      "CAM-003",
		CategoryService:   "Solda",
		Description:       "Trinca no chassi",
	})
	var validationErr *apperrors.ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *ContractTestSuite) TestRequesterSeesOnlyOwnSolicitations() {
	s.submit(s.requester, "CAM-001")
	s.submit(s.admin, "CAM-002")

	items, err := s.newList().Load(context.Background(), s.requester, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("João Solicitante", items[0].UserName)

	items, err = s.newList().Load(context.Background(), s.admin, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Greater(items[0].NumSol, items[1].NumSol)
}

func (s *ContractTestSuite) TestFiltersAreAppliedByBackend() {
	s.submit(s.requester, "CAM-001")
	s.submit(s.admin, "CAM-002")
	today := time.Now().Format("2006-01-02")

	items, err := s.newList().Load(context.Background(), s.admin, dto.SolicitationFilterDTO{
		StartDate: today,
		EndDate:   today,
		Requester: []string{"Ana Administradora"},
		Status:    []string{constants.StatusPendente},
	})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Ana Administradora", items[0].UserName)

	items, err = s.newList().Load(context.Background(), s.admin, dto.SolicitationFilterDTO{Status: []string{constants.StatusFinalizado}})
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ContractTestSuite) TestFinalizeWritesBothHalves() {
	created := s.submit(s.requester, "CAM-001")
	list := s.newList()
	_, err := list.Load(context.Background(), s.admin, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)

	finalized, err := list.Finalize(context.Background(), s.admin, *created)
	s.Require().NoError(err)
	s.Equal(constants.StatusFinalizado, finalized.Status)
	s.Require().NotNil(finalized.AtendedAt)

	items, err := s.newList().Load(context.Background(), s.admin, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(constants.StatusFinalizado, items[0].Status)
	s.NotNil(items[0].AtendedAt)
	s.Equal(created.CreatedAt.Unix(), items[0].CreatedAt.Unix())

	historic, err := s.historic.List(context.Background(), s.admin.Token)
	s.Require().NoError(err)
	s.Require().Len(historic, 2)
	s.Equal(constants.StatusFinalizado, historic[1].Status)
	s.NotEqual(created.ID, historic[1].ID)

	_, err = list.Finalize(context.Background(), s.admin, *created)
	s.ErrorIs(err, apperrors.ErrAlreadyFinalized)
}

func (s *ContractTestSuite) TestSoftDeleteHidesSolicitation() {
	created := s.submit(s.requester, "CAM-001")
	list := s.newList()
	_, err := list.Load(context.Background(), s.admin, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)

	s.Require().NoError(list.SoftDelete(context.Background(), s.admin, *created, services.AlwaysConfirm))
	s.Empty(list.Items())

	items, err := s.newList().Load(context.Background(), s.admin, dto.SolicitationFilterDTO{})
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ContractTestSuite) TestBackendRefusesRequesterMutation() {
	created := s.submit(s.requester, "CAM-001")
	status := constants.StatusFinalizado

	err := s.solicitations.Update(context.Background(), s.requester.Token, created.ID, dto.UpdateSolicitationDTO{Status: &status})
	s.ErrorIs(err, apperrors.ErrForbidden)

	err = s.solicitations.Update(context.Background(), s.admin.Token, "nao-existe", dto.UpdateSolicitationDTO{Status: &status})
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.solicitations.List(context.Background(), "token-invalido", dto.SolicitationFilterDTO{})
	s.ErrorIs(err, apperrors.ErrAuthInvalid)
}

func (s *ContractTestSuite) TestReferenceLifecycle() {
	ctx := context.Background()

	created, err := s.filials.Create(ctx, s.admin, dto.CreateFilialDTO{Name: "Jundiaí"})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	_, err = s.filials.Create(ctx, s.requester, dto.CreateFilialDTO{Name: "Outra"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.Require().NoError(s.filials.Deactivate(ctx, s.admin, *created, services.AlwaysConfirm))

	active, err := s.filials.List(ctx, s.admin, false)
	s.Require().NoError(err)
	for _, f := range active {
		s.NotEqual("Jundiaí", f.Name)
	}
	all, err := s.filials.List(ctx, s.admin, true)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *ContractTestSuite) TestUserRegistrationAndDeactivation() {
	ctx := context.Background()

	created, err := s.users.Create(ctx, s.admin, dto.CreateUserDTO{
		Name:       "Carla Mecânica",
		Email:      "carla@frota.local",
		Password:   "carla123",
		LevelUser:  1,
		Filial:     "Sorocaba",
		CostCenter: "CC-300",
	})
	s.Require().NoError(err)

	sess, err := s.auth.Login(ctx, dto.LoginDTO{Email: "carla@frota.local", Password: "carla123"})
	s.Require().NoError(err)
	s.Equal("Sorocaba", sess.Filial)

	s.Require().NoError(s.users.Deactivate(ctx, s.admin, *created, services.AlwaysConfirm))
	_, err = s.auth.Login(ctx, dto.LoginDTO{Email: "carla@frota.local", Password: "carla123"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *ContractTestSuite) TestFilterOptionsResolveTypedNames() {
	resolved, err := s.filterOptions.Resolve(context.Background(), s.admin, dto.SolicitationFilterDTO{
		Requester: []string{"joao"},
		Filial:    []string{"campinas"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"João Solicitante"}, resolved.Requester)
	s.Equal([]string{"Campinas"}, resolved.Filial)

	_, err = s.filterOptions.Resolve(context.Background(), s.requester, dto.SolicitationFilterDTO{Filial: []string{"Campinas"}})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestContractTestSuite(t *testing.T) {
	suite.Run(t, new(ContractTestSuite))
}
