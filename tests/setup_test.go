package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ilkol21/company-crm/internal/config"
	"github.com/ilkol21/company-crm/internal/controller"
	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/events"
	"github.com/ilkol21/company-crm/internal/repository"
	"github.com/ilkol21/company-crm/internal/service"
	"github.com/ilkol21/company-crm/internal/token"
	"github.com/ilkol21/company-crm/internal/utils"
	"github.com/ilkol21/company-crm/internal/worker"
)

// BaseTestSuite boots a PostgreSQL container and the full HTTP stack once
// for the whole suite. Each test starts from truncated tables.
type BaseTestSuite struct {
	suite.Suite
	Container  testcontainers.Container
	DB         *gorm.DB
	Ctx        context.Context
	Server     *httptest.Server
	Issuer     *token.Issuer
	Dispatcher *worker.EventDispatcher
	cancelHub  context.CancelFunc
}

func (s *BaseTestSuite) SetupSuite() {
	ctx := context.Background()
	s.Ctx = ctx

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "test_crm",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err, "Failed to start PostgreSQL container")
	s.Container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err, "Failed to get container host")
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err, "Failed to get container port")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=testuser password=testpass dbname=test_crm sslmode=disable",
		host, port.Port(),
	)

	db, err := utils.InitDB(dsn, zap.NewNop())
	s.Require().NoError(err, "Failed to connect to database")
	s.DB = db

	s.Require().NoError(domain.AutoMigrate(db), "Failed to run migrations")

	s.setupHTTPServer(db)
}

func (s *BaseTestSuite) setupHTTPServer(db *gorm.DB) {
	logger := zap.NewNop()
	issuer := token.NewIssuer(config.TokenConfig{
		AccessSecret:    "e2e-access-secret",
		RefreshSecret:   "e2e-refresh-secret",
		AccessLifetime:  time.Minute,
		RefreshLifetime: time.Hour,
	})
	s.Issuer = issuer

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	hasher := utils.NewPasswordHasher(4)
	validator := utils.NewValidator()

	hubCtx, cancel := context.WithCancel(context.Background())
	s.cancelHub = cancel
	hub := events.NewHub(issuer, logger)
	go hub.Run(hubCtx)

	s.Dispatcher = worker.NewEventDispatcher(2, 50, hub, logger)

	historyService := service.NewHistoryService(historyRepo)
	authService := service.NewAuthService(userRepo, historyService, hasher, issuer, validator)
	userService := service.NewUserService(userRepo, historyService, hasher, s.Dispatcher)
	companyService := service.NewCompanyService(companyRepo, historyService, s.Dispatcher)

	router := controller.NewRouter(controller.RouterDeps{
		Auth:      controller.NewAuthController(authService, logger),
		Users:     controller.NewUserController(userService, logger),
		Companies: controller.NewCompanyController(companyService, logger),
		History:   controller.NewHistoryController(historyService),
		Issuer:    issuer,
		Socket:    hub,
		Logger:    logger,
	})

	s.Server = httptest.NewServer(router)
}

func (s *BaseTestSuite) TearDownSuite() {
	if s.Server != nil {
		s.Server.Close()
	}
	if s.Dispatcher != nil {
		s.Dispatcher.Stop()
	}
	if s.cancelHub != nil {
		s.cancelHub()
	}
	if s.Container != nil {
		s.Container.Terminate(s.Ctx)
	}
}

func (s *BaseTestSuite) SetupTest() {
	s.CleanupTables()
}

// CleanupTables truncates all tables for test isolation.
func (s *BaseTestSuite) CleanupTables() {
	tables := []string{"history", "companies", "users"}
	for _, table := range tables {
		err := s.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error
		s.Require().NoError(err, "Failed to truncate table %s", table)
	}
}

// DoJSON performs an HTTP request against the suite server and decodes
// the response body into out when it is non-nil.
func (s *BaseTestSuite) DoJSON(method, path, bearer string, body, out any) int {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.Server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.Server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if out != nil && len(data) > 0 {
		s.Require().NoError(json.Unmarshal(data, out), "body: %s", data)
	}
	return resp.StatusCode
}

// RegisterAndLogin creates an identity and returns its token pair.
func (s *BaseTestSuite) RegisterAndLogin(fullName, email, password string, role domain.Role) *service.LoginResponse {
	status := s.DoJSON(http.MethodPost, "/auth/register", "", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
		"role":     string(role),
	}, nil)
	s.Require().Equal(http.StatusCreated, status)

	var login service.LoginResponse
	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &login)
	s.Require().Equal(http.StatusOK, status)
	return &login
}

func TestSuites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(AuthE2ESuite))
	suite.Run(t, new(CompanyE2ESuite))
}
