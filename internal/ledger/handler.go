package ledger

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/platform/httpx"
	"github.com/partsbook/partsbook/internal/shared"
)

const dateLayout = "2006-01-02"

// Handler wires the voucher HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers voucher routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/vouchers", h.list)
	r.Post("/vouchers", h.create)
	r.Get("/vouchers/{id}", h.get)
	r.Post("/vouchers/{id}/approval", h.toggleApproval)
	r.Post("/vouchers/{id}/clear", h.clearPostDated)
	r.Delete("/vouchers/{id}", h.delete)
	r.Get("/accounts/{id}/balance", h.accountBalance)
}

type accountRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type lineRequest struct {
	Account     accountRef      `json:"account" validate:"required"`
	Dr          decimal.Decimal `json:"dr"`
	Cr          decimal.Decimal `json:"cr"`
	Description string          `json:"description"`
}

type createVoucherRequest struct {
	Type        int             `json:"type" validate:"required,min=1,max=7"`
	Date        string          `json:"date" validate:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount" validate:"required"`
	Name        string          `json:"name"`
	Account     *accountRef     `json:"account"`
	List        []lineRequest   `json:"list" validate:"required,min=1,dive"`
	ChequeNo    *string         `json:"chequeNo"`
	ChequeDate  *string         `json:"chequeDate"`
}

type transactionResponse struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	Dr          decimal.Decimal `json:"dr"`
	Cr          decimal.Decimal `json:"cr"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	IsApproved  bool            `json:"isApproved"`
}

type voucherResponse struct {
	ID          int64                 `json:"id"`
	VoucherNo   int64                 `json:"voucherNo"`
	FormattedNo string                `json:"formattedNo"`
	Type        int                   `json:"type"`
	Date        string                `json:"date"`
	Name        string                `json:"name,omitempty"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	IsApproved  bool                  `json:"isApproved"`
	IsPostDated bool                  `json:"isPostDated"`
	ChequeNo    *string               `json:"chequeNo,omitempty"`
	ChequeDate  *string               `json:"chequeDate,omitempty"`
	ClearedDate *string               `json:"clearedDate,omitempty"`
	IsAuto      bool                  `json:"isAuto"`
	GeneratedAt time.Time             `json:"generatedAt"`
	List        []transactionResponse `json:"list"`
}

func toVoucherResponse(v Voucher) voucherResponse {
	resp := voucherResponse{
		ID:          v.ID,
		VoucherNo:   v.No,
		FormattedNo: v.FormattedNo(),
		Type:        int(v.Type),
		Date:        v.Date.Format(dateLayout),
		Name:        v.Name,
		TotalAmount: v.TotalAmount,
		IsApproved:  v.IsApproved,
		IsPostDated: v.IsPostDated,
		ChequeNo:    v.ChequeNo,
		IsAuto:      v.IsAuto,
		GeneratedAt: v.GeneratedAt,
	}
	if v.ChequeDate != nil {
		d := v.ChequeDate.Format(dateLayout)
		resp.ChequeDate = &d
	}
	if v.ClearedDate != nil {
		d := v.ClearedDate.Format(dateLayout)
		resp.ClearedDate = &d
	}
	resp.List = make([]transactionResponse, 0, len(v.Transactions))
	for _, t := range v.Transactions {
		resp.List = append(resp.List, transactionResponse{
			ID:          t.ID,
			AccountID:   t.AccountID,
			Dr:          t.Debit,
			Cr:          t.Credit,
			Balance:     t.Balance,
			Description: t.Description,
			Date:        t.Date.Format(dateLayout),
			IsApproved:  t.IsApproved,
		})
	}
	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createVoucherRequest
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
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be formatted YYYY-MM-DD")
		return
	}
	input := CreateVoucherInput{
		Type:        VoucherType(req.Type),
		Date:        date,
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
	}
	// A blank cheque number is no cheque; only a real one marks the
	// voucher post-dated.
	if req.ChequeNo != nil && strings.TrimSpace(*req.ChequeNo) != "" {
		input.ChequeNo = req.ChequeNo
	}
	if req.Account != nil {
		input.CounterAccountID = &req.Account.ID
	}
	if req.ChequeDate != nil {
		chequeDate, err := time.Parse(dateLayout, *req.ChequeDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "chequeDate must be formatted YYYY-MM-DD")
			return
		}
		input.ChequeDate = &chequeDate
	}
	for _, line := range req.List {
		input.Lines = append(input.Lines, LineInput{
			AccountID:   line.Account.ID,
			Debit:       line.Dr,
			Credit:      line.Cr,
			Description: line.Description,
		})
	}

	created, err := h.service.CreateVoucher(r.Context(), input, shared.UserFromContext(r.Context()))
	if err != nil {
		h.logger.Error("create voucher", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toVoucherResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 100}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil || !VoucherType(t).Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid voucher type")
			return
		}
		vt := VoucherType(t)
		filter.Type = &vt
	}
	var err error
	if filter.DateFrom, err = optionalDate(r, "from"); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be formatted YYYY-MM-DD")
		return
	}
	if filter.DateTo, err = optionalDate(r, "to"); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be formatted YYYY-MM-DD")
		return
	}
	vouchers, err := h.service.List(r.Context(), shared.UserFromContext(r.Context()), filter)
	if err != nil {
		h.logger.Error("list vouchers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]voucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, toVoucherResponse(v))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"vouchers": out})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.voucherID(w, r)
	if !ok {
		return
	}
	voucher, err := h.service.Get(r.Context(), id, shared.UserFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toVoucherResponse(voucher))
}

func (h *Handler) toggleApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := h.voucherID(w, r)
	if !ok {
		return
	}
	voucher, err := h.service.ToggleApproval(r.Context(), id, shared.UserFromContext(r.Context()))
	if err != nil {
		h.logger.Error("toggle approval", slog.Any("error", err), slog.Int64("voucher", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toVoucherResponse(voucher))
}

type clearRequest struct {
	Date string `json:"date" validate:"required"`
}

func (h *Handler) clearPostDated(w http.ResponseWriter, r *http.Request) {
	id, ok := h.voucherID(w, r)
	if !ok {
		return
	}
	var req clearRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	clearedDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be formatted YYYY-MM-DD")
		return
	}
	voucher, err := h.service.ClearPostDated(r.Context(), id, shared.UserFromContext(r.Context()), clearedDate)
	if err != nil {
		h.logger.Error("clear post-dated", slog.Any("error", err), slog.Int64("voucher", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toVoucherResponse(voucher))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.voucherID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.UserFromContext(r.Context())); err != nil {
		h.logger.Error("delete voucher", slog.Any("error", err), slog.Int64("voucher", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func (h *Handler) accountBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	asOf, err := optionalDate(r, "as_of")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "as_of must be formatted YYYY-MM-DD")
		return
	}
	balance, err := h.service.AccountBalance(r.Context(), accountID, shared.UserFromContext(r.Context()), asOf)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"accountId": accountID, "balance": balance})
}

func (h *Handler) voucherID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid voucher id")
		return 0, false
	}
	return id, true
}

func optionalDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
