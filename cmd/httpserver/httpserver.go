// Package httpserver manages server creation and api routing.
package httpserver

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/internal/accountdelivery"
	"github.com/go-petr/account-api/internal/accountrepo"
	"github.com/go-petr/account-api/internal/accountservice"
	"github.com/go-petr/account-api/internal/middleware"
	"github.com/go-petr/account-api/pkg/configpkg"
	"github.com/go-petr/account-api/pkg/errorspkg"
	"github.com/go-petr/account-api/pkg/web"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB      *sqlx.DB
	Engine  *gin.Engine
	Config  configpkg.Config
	Metrics *middleware.Metrics
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the account tags to the validator shared by all gin engines.
func registerValidators() error {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validatorsErr = accountdelivery.RegisterValidators(v)
		}
	})

	return validatorsErr
}

// New creates Server type with instantiated domains and routes.
func New(db *sqlx.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("cannot register account validators: %w", err)
	}

	accountRepo := accountrepo.New(db)
	accountService := accountservice.New(accountRepo)
	accountHandler := accountdelivery.NewHandler(accountService, config.ServiceName)

	metrics := middleware.NewMetrics("account_api")

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = false

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().Msgf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(config.CORSAllowedOrigins))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, web.Error(errorspkg.ErrRouteNotFound))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, web.Error(errorspkg.ErrMethodNotAllowed))
	})

	engine.GET("/", accountHandler.Index)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := engine.Group("/api/v1")

	api.GET("/health", accountHandler.Health)

	api.POST("/accounts", accountHandler.Create)
	api.GET("/accounts", accountHandler.List)
	api.GET("/accounts/:id", accountHandler.Get)
	api.PUT("/accounts/:id", accountHandler.Update)
	api.DELETE("/accounts/:id", accountHandler.Delete)

	server := &Server{
		DB:      db,
		Engine:  engine,
		Config:  config,
		Metrics: metrics,
	}

	return server, nil
}
