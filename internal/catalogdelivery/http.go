// Package catalogdelivery manages delivery layer of the service catalog and banners.
package catalogdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/web"
)

// Service provides service layer interface needed by catalog delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package catalogdelivery
type Service interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

// Handler facilitates catalog delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns catalog handler.
func NewHandler(cs Service) *Handler {
	return &Handler{service: cs}
}

// GetBanners handles http request to list active banners.
func (h *Handler) GetBanners(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	banners, err := h.service.ListBanners(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Internal())
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", banners))
}

// GetServices handles http request to list active payable services.
func (h *Handler) GetServices(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	services, err := h.service.ListServices(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Internal())
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", services))
}
