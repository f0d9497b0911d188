// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/errorspkg"
	"github.com/go-petr/account-api/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, id int64, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Response messages.
const (
	MsgRequired     = "Name and email are required"
	MsgNoData       = "No data provided"
	MsgInvalidJSON  = "Invalid JSON body"
	MsgNotFound     = "Account not found"
	MsgEmailExists  = "Email already exists"
	MsgDeleted      = "Account deleted successfully"
	MsgRunning      = "Account Management API is running!"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Handler facilitates account delivery layer logic.
type Handler struct {
	service     Service
	serviceName string
}

// NewHandler returns account handler.
func NewHandler(as Service, serviceName string) Handler {
	return Handler{service: as, serviceName: serviceName}
}

// createRequest rejects null and empty name or email through required.
type createRequest struct {
	Name  string  `json:"name" binding:"required,accountname"`
	Email string  `json:"email" binding:"required,accountemail"`
	Phone *string `json:"phone"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(createErrorMsg(err)))

		return
	}

	account, err := h.service.Create(ctx, domain.CreateAccountParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		storeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, account)
}

// createErrorMsg turns a binding error of the create request into a client message.
func createErrorMsg(err error) string {
	var (
		ve  validator.ValidationErrors
		ute *json.UnmarshalTypeError
		se  *json.SyntaxError
	)

	switch {
	case errors.Is(err, io.EOF):
		return MsgRequired
	case errors.As(err, &ve):
		for _, fe := range ve {
			if fe.Tag() == "required" {
				return MsgRequired
			}
		}

		return web.GetErrorMsg(ve[0])
	case errors.As(err, &ute):
		if ute.Field == "" {
			return MsgInvalidJSON
		}

		return "Invalid value for field " + ute.Field
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return MsgInvalidJSON
	}

	// gin reports a request without a body as "invalid request".
	return MsgRequired
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := accountID(gctx)
	if !ok {
		return
	}

	account, err := h.service.Get(gctx.Request.Context(), id)
	if err != nil {
		storeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, account)
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	accounts, err := h.service.List(gctx.Request.Context())
	if err != nil {
		storeError(gctx, err)
		return
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	gctx.JSON(http.StatusOK, accounts)
}

// Update handles http request to change the given fields of account.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := accountID(gctx)
	if !ok {
		return
	}

	body, err := gctx.GetRawData()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(MsgInvalidJSON))

		return
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(MsgNoData))
		return
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(MsgInvalidJSON))

		return
	}

	if len(keys) == 0 {
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(MsgNoData))
		return
	}

	params, err := parseUpdate(keys)
	if err != nil {
		storeError(gctx, err)
		return
	}

	account, err := h.service.Update(ctx, id, params)
	if err != nil {
		storeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, account)
}

// Delete handles http request to delete account.
func (h *Handler) Delete(gctx *gin.Context) {
	id, ok := accountID(gctx)
	if !ok {
		return
	}

	if err := h.service.Delete(gctx.Request.Context(), id); err != nil {
		storeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Message{Message: MsgDeleted})
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health handles http request to check the service and its database.
func (h *Handler) Health(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	if err := h.service.Ping(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("health check failed")
		gctx.JSON(http.StatusInternalServerError, healthResponse{
			Status:   StatusUnhealthy,
			Service:  h.serviceName,
			Database: "disconnected",
			Error:    err.Error(),
		})

		return
	}

	gctx.JSON(http.StatusOK, healthResponse{
		Status:   StatusHealthy,
		Service:  h.serviceName,
		Database: "connected",
	})
}

type indexResponse struct {
	Message string `json:"message"`
	Service string `json:"service"`
}

// Index handles the root probe.
func (h *Handler) Index(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, indexResponse{Message: MsgRunning, Service: h.serviceName})
}

// accountID parses the id path parameter. Anything but a non-negative integer
// is answered with the generic not found response.
func accountID(gctx *gin.Context) (int64, bool) {
	s := gctx.Param("id")

	for _, c := range s {
		if c < '0' || c > '9' {
			s = ""
			break
		}
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(errorspkg.ErrRouteNotFound))
		return 0, false
	}

	return id, true
}

// storeError writes the response for an error returned by the service.
func storeError(gctx *gin.Context, err error) {
	var ve *errorspkg.ValidationError

	switch {
	case errors.As(err, &ve):
		zerolog.Ctx(gctx.Request.Context()).Info().Str("field", ve.Field).Msg(ve.Message)
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(ve.Message))
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.ErrorMsg(MsgNotFound))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		gctx.JSON(http.StatusConflict, web.ErrorMsg(MsgEmailExists))
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(err))
	}
}
