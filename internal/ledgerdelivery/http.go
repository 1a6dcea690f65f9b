// Package ledgerdelivery manages delivery layer of the ledger.
package ledgerdelivery

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/internal/middleware"
	"github.com/go-ppob/wallet/pkg/tokenpkg"
	"github.com/go-ppob/wallet/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	GetBalance(ctx context.Context, email string) (int64, error)
	TopUp(ctx context.Context, email string, amount int64) (int64, error)
	Pay(ctx context.Context, email, serviceCode string) (domain.Transaction, error)
	ListTransactions(ctx context.Context, email string, offset, limit int32) ([]domain.Transaction, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

func authEmail(gctx *gin.Context) string {
	payload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	return payload.Email
}

type balanceData struct {
	Balance int64 `json:"balance"`
}

// GetBalance handles http request to get the current balance.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	balance, err := h.service.GetBalance(ctx, authEmail(gctx))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Get Balance Success", balanceData{Balance: balance}))
}

type topUpRequest struct {
	TopUpAmount int64 `json:"top_up_amount" binding:"required,gt=0"`
}

// TopUp handles http request to credit the balance.
func (h *Handler) TopUp(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req topUpRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest,
			web.Error(web.StatusBadRequest, "Parameter amount must be a number greater than zero"))

		return
	}

	balance, err := h.service.TopUp(ctx, authEmail(gctx), req.TopUpAmount)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest,
				web.Error(web.StatusBadRequest, "Parameter amount must be a number greater than zero"))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Top Up Balance Success", balanceData{Balance: balance}))
}

type payRequest struct {
	ServiceCode string `json:"service_code" binding:"required"`
}

type payData struct {
	InvoiceNumber   string                 `json:"invoice_number"`
	ServiceCode     string                 `json:"service_code"`
	ServiceName     string                 `json:"service_name"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	TotalAmount     int64                  `json:"total_amount"`
	CreatedOn       time.Time              `json:"created_on"`
}

// Pay handles http request to pay for a cataloged service.
func (h *Handler) Pay(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req payRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Service code is required"))

		return
	}

	transaction, err := h.service.Pay(ctx, authEmail(gctx), req.ServiceCode)
	if err != nil {
		switch err {
		case domain.ErrServiceNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Service not found"))
			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Insufficient balance"))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusUnauthorized, web.Error(web.StatusUnauthenticated, "Invalid or expired token"))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Internal())

		return
	}

	data := payData{
		InvoiceNumber:   transaction.InvoiceNumber,
		ServiceCode:     transaction.ServiceCode,
		ServiceName:     transaction.ServiceName,
		TransactionType: transaction.Type,
		TotalAmount:     transaction.Amount,
		CreatedOn:       transaction.CreatedAt,
	}

	gctx.JSON(http.StatusOK, web.Success("Transaction Success", data))
}

type historyRecord struct {
	InvoiceNumber   string                 `json:"invoice_number"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	Description     string                 `json:"description"`
	TotalAmount     int64                  `json:"total_amount"`
	CreatedOn       time.Time              `json:"created_on"`
}

type historyData struct {
	Offset  int32           `json:"offset"`
	Limit   int32           `json:"limit"`
	Records []historyRecord `json:"records"`
}

// GetHistory handles http request to list the transaction history.
//
// The offset query parameter defaults to 0 when absent or non-numeric;
// limit is optional and returns all remaining records when omitted.
func (h *Handler) GetHistory(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	offset, err := strconv.ParseInt(gctx.Query("offset"), 10, 32)
	if err != nil {
		offset = 0
	}

	if offset < 0 {
		gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Offset must be a positive number"))
		return
	}

	var limit int64

	if rawLimit := gctx.Query("limit"); rawLimit != "" {
		limit, err = strconv.ParseInt(rawLimit, 10, 32)
		if err != nil || limit < 1 {
			l.Info().Str("limit", rawLimit).Msg("rejected history limit")
			gctx.JSON(http.StatusBadRequest, web.Error(web.StatusBadRequest, "Limit must be a positive number"))

			return
		}
	}

	transactions, err := h.service.ListTransactions(ctx, authEmail(gctx), int32(offset), int32(limit))
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Internal())
		return
	}

	records := make([]historyRecord, 0, len(transactions))
	for _, tr := range transactions {
		records = append(records, historyRecord{
			InvoiceNumber:   tr.InvoiceNumber,
			TransactionType: tr.Type,
			Description:     tr.Description,
			TotalAmount:     tr.Amount,
			CreatedOn:       tr.CreatedAt,
		})
	}

	if limit == 0 {
		limit = int64(len(records))
	}

	data := historyData{
		Offset:  int32(offset),
		Limit:   int32(limit),
		Records: records,
	}

	gctx.JSON(http.StatusOK, web.Success("Get History Success", data))
}
