// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/internal/middleware"
	"github.com/go-ppob/wallet/pkg/configpkg"
	"github.com/go-ppob/wallet/pkg/tokenpkg"
	"github.com/go-ppob/wallet/pkg/web"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, email, password, firstName, lastName string) (domain.Profile, error)
	CheckPassword(ctx context.Context, email, password string) (domain.Profile, error)
	GetProfile(ctx context.Context, email string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, email, firstName, lastName string) (domain.Profile, error)
	UpdateProfileImage(ctx context.Context, email, imageURL string) (domain.Profile, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service    Service
	tokenMaker tokenpkg.Maker
	config     configpkg.Config
}

// NewHandler returns user handler.
func NewHandler(us Service, tokenMaker tokenpkg.Maker, config configpkg.Config) *Handler {
	return &Handler{
		service:    us,
		tokenMaker: tokenMaker,
		config:     config,
	}
}

func authEmail(gctx *gin.Context) string {
	payload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	return payload.Email
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return web.GetErrorMsg(ve)
	}

	return "Malformed request body"
}

type registrationRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Registration handles http request to register a user.
func (h *Handler) Registration(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registrationRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, bindingErrorMsg(err)))

		return
	}

	_, err := h.service.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Email already registered"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Registration successful, please login", nil))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginData struct {
	Token string `json:"token"`
}

// Login handles http login request and returns an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, bindingErrorMsg(err)))

		return
	}

	profile, err := h.service.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		if err == domain.ErrWrongPassword {
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusWrongCredentials, "Wrong email or password"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	token, _, err := h.tokenMaker.CreateToken(profile.Email, h.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Login Success", loginData{Token: token}))
}

// GetProfile handles http request to get the authenticated user's profile.
func (h *Handler) GetProfile(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	profile, err := h.service.GetProfile(ctx, authEmail(gctx))
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", profile))
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// UpdateProfile handles http request to change the user's names.
func (h *Handler) UpdateProfile(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req updateProfileRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, bindingErrorMsg(err)))

		return
	}

	profile, err := h.service.UpdateProfile(ctx, authEmail(gctx), req.FirstName, req.LastName)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Update Profile Success", profile))
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UpdateProfileImage handles http request to upload a new profile image.
func (h *Handler) UpdateProfileImage(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	file, err := gctx.FormFile("file")
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Invalid image format"))

		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Invalid image format"))
		return
	}

	filename := uuid.NewString() + ext
	if err := gctx.SaveUploadedFile(file, filepath.Join(h.config.UploadDir, filename)); err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	imageURL := fmt.Sprintf("%s/%s/%s", h.config.BaseURL, h.config.UploadDir, filename)

	profile, err := h.service.UpdateProfileImage(ctx, authEmail(gctx), imageURL)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Update Profile Image Success", profile))
}
