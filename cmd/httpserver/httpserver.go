// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-ppob/wallet/internal/catalogdelivery"
	"github.com/go-ppob/wallet/internal/catalogrepo"
	"github.com/go-ppob/wallet/internal/catalogservice"
	"github.com/go-ppob/wallet/internal/ledgerdelivery"
	"github.com/go-ppob/wallet/internal/ledgerrepo"
	"github.com/go-ppob/wallet/internal/ledgerservice"
	"github.com/go-ppob/wallet/internal/middleware"
	"github.com/go-ppob/wallet/internal/userdelivery"
	"github.com/go-ppob/wallet/internal/userrepo"
	"github.com/go-ppob/wallet/internal/userservice"
	"github.com/go-ppob/wallet/pkg/configpkg"
	"github.com/go-ppob/wallet/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, cache catalogservice.Cache, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	catalogRepo := catalogrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	tokenMaker, err := newTokenMaker(config)
	if err != nil {
		return nil, err
	}

	userService := userservice.New(userRepo)
	catalogService := catalogservice.New(catalogRepo, cache, config.CatalogCacheTTL)
	ledgerService := ledgerservice.New(ledgerRepo, catalogService)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config)
	catalogHandler := catalogdelivery.NewHandler(catalogService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.Static("/"+config.UploadDir, "./"+config.UploadDir)

	engine.POST("/registration", userHandler.Registration)
	engine.POST("/login", userHandler.Login)
	engine.GET("/banner", catalogHandler.GetBanners)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/profile", userHandler.GetProfile)
	authRoutes.PUT("/profile/update", userHandler.UpdateProfile)
	authRoutes.PUT("/profile/image", userHandler.UpdateProfileImage)

	authRoutes.GET("/services", catalogHandler.GetServices)

	authRoutes.GET("/balance", ledgerHandler.GetBalance)
	authRoutes.POST("/topup", ledgerHandler.TopUp)
	authRoutes.POST("/transaction", ledgerHandler.Pay)
	authRoutes.GET("/transaction/history", ledgerHandler.GetHistory)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

func newTokenMaker(config configpkg.Config) (tokenpkg.Maker, error) {
	switch config.TokenMaker {
	case "paseto":
		return tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	case "", "jwt":
		return tokenpkg.NewJWTMaker(config.TokenSymmetricKey)
	default:
		return nil, fmt.Errorf("unsupported token maker %q", config.TokenMaker)
	}
}
