package coa

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/partsbook/partsbook/internal/platform/httpx"
	"github.com/partsbook/partsbook/internal/shared"
)

// Handler wires chart of accounts HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers chart of accounts routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/tree", h.tree)
	r.Get("/accounts", h.listAccounts)
	r.Get("/accounts/{id}", h.getAccount)
	r.Post("/accounts", h.createAccount)
	r.Post("/accounts/{id}/deactivate", h.deactivateAccount)
}

type createAccountRequest struct {
	SubGroupID int64  `json:"subGroupId" validate:"required,gt=0"`
	Code       string `json:"code" validate:"required,max=32"`
	Name       string `json:"name" validate:"required,max=128"`
	Shared     bool   `json:"shared"`
}

type accountResponse struct {
	ID             int64          `json:"id"`
	SubGroupID     int64          `json:"subGroupId"`
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	IsActive       bool           `json:"isActive"`
	UserID         *int64         `json:"userId,omitempty"`
	SubGroupName   string         `json:"subGroupName,omitempty"`
	GroupName      string         `json:"groupName,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	CashBank       bool           `json:"cashBank,omitempty"`
}

func toAccountResponse(info AccountInfo) accountResponse {
	return accountResponse{
		ID:             info.ID,
		SubGroupID:     info.SubGroupID,
		Code:           info.Code,
		Name:           info.Name,
		IsActive:       info.IsActive,
		UserID:         info.UserID,
		SubGroupName:   info.SubGroupName,
		GroupName:      info.GroupName,
		Classification: info.Classification,
		CashBank:       info.CashBank,
	}
}

func (h *Handler) tree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.service.Tree(r.Context())
	if err != nil {
		h.logger.Error("coa tree", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"groups": nodes})
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserFromContext(r.Context())
	activeOnly := r.URL.Query().Get("active") == "true"
	accounts, err := h.service.List(r.Context(), userID, activeOnly)
	if err != nil {
		h.logger.Error("coa list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, info := range accounts {
		out = append(out, toAccountResponse(info))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"accounts": out})
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	info, err := h.service.Get(r.Context(), id, shared.UserFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toAccountResponse(info))
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		fields := map[string]string{}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		httpx.ProblemFields(w, http.StatusBadRequest, "Validation Failed", fields)
		return
	}
	userID := shared.UserFromContext(r.Context())
	account := Account{
		SubGroupID: req.SubGroupID,
		Code:       req.Code,
		Name:       req.Name,
		IsActive:   true,
	}
	if !req.Shared {
		account.UserID = &userID
	}
	created, err := h.service.CreateAccount(r.Context(), account)
	if err != nil {
		h.logger.Error("coa create account", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toAccountResponse(AccountInfo{Account: created}))
}

func (h *Handler) deactivateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	if err := h.service.Deactivate(r.Context(), id, shared.UserFromContext(r.Context())); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "isActive": false})
}
