// Package middleware provides gin middleware for authentication and logging.
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-ppob/wallet/pkg/tokenpkg"
	"github.com/go-ppob/wallet/pkg/web"
)

// Authorization header conventions.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

const msgInvalidToken = "Invalid or expired token"

// AddAuthorization sets a bearer token on the request. Used by tests
// and client helpers.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, email string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(email, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in
// the gin context. Any failure is surfaced as the unauthenticated
// envelope; the concrete cause is not exposed.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			abortUnauthenticated(gctx)
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], AuthTypeBearer) {
			abortUnauthenticated(gctx)
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			abortUnauthenticated(gctx)
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

func abortUnauthenticated(gctx *gin.Context) {
	gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, msgInvalidToken))
}
