package reports

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/partsbook/partsbook/internal/platform/httpx"
	"github.com/partsbook/partsbook/internal/shared"
)

const dateLayout = "2006-01-02"

// CSVWriter renders a report payload to CSV; wired from the export package
// so the handler stays free of serialisation detail.
type CSVWriter struct {
	TrialBalance func(w io.Writer, report TrialBalance) error
	DailyClosing func(w io.Writer, report DailyClosing) error
}

// Handler wires the report HTTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	csv     CSVWriter
}

func NewHandler(logger *slog.Logger, service *Service, csv CSVWriter) *Handler {
	return &Handler{logger: logger, service: service, csv: csv}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/daily-closing", h.dailyClosing)
	r.Get("/balance-sheet", h.balanceSheet)
	r.Get("/trial-balance", h.trialBalance)
	r.Get("/trial-balance.csv", h.trialBalanceCSV)
	r.Get("/general-journal", h.generalJournal)
}

type dailyClosingRequest struct {
	Date        string  `json:"date"`
	CoaAccounts []int64 `json:"coaAccounts"`
	Format      string  `json:"format"`
}

func (h *Handler) dailyClosing(w http.ResponseWriter, r *http.Request) {
	var req dailyClosingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be formatted YYYY-MM-DD")
		return
	}
	report, err := h.service.DailyClosing(r.Context(), shared.UserFromContext(r.Context()), date, req.CoaAccounts)
	if err != nil {
		h.logger.Error("daily closing", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if req.Format == "csv" && h.csv.DailyClosing != nil {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="daily-closing-`+report.Date+`.csv"`)
		if err := h.csv.DailyClosing(w, report); err != nil {
			h.logger.Error("daily closing csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := requiredDate(r, "date")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be formatted YYYY-MM-DD")
		return
	}
	report, err := h.service.BalanceSheet(r.Context(), shared.UserFromContext(r.Context()), asOf)
	if err != nil {
		h.logger.Error("balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadTrialBalance(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) trialBalanceCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadTrialBalance(w, r)
	if !ok {
		return
	}
	if h.csv.TrialBalance == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "CSV export disabled")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trial-balance-`+report.From+`-`+report.To+`.csv"`)
	if err := h.csv.TrialBalance(w, report); err != nil {
		h.logger.Error("trial balance csv", slog.Any("error", err))
	}
}

func (h *Handler) loadTrialBalance(w http.ResponseWriter, r *http.Request) (TrialBalance, bool) {
	from, err := requiredDate(r, "from")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be formatted YYYY-MM-DD")
		return TrialBalance{}, false
	}
	to, err := requiredDate(r, "to")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be formatted YYYY-MM-DD")
		return TrialBalance{}, false
	}
	report, err := h.service.TrialBalance(r.Context(), shared.UserFromContext(r.Context()), from, to)
	if err != nil {
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return TrialBalance{}, false
	}
	return report, true
}

func (h *Handler) generalJournal(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var from, to *time.Time
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be formatted YYYY-MM-DD")
			return
		}
		from = &parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be formatted YYYY-MM-DD")
			return
		}
		to = &parsed
	}
	report, err := h.service.GeneralJournal(r.Context(), shared.UserFromContext(r.Context()), from, to)
	if err != nil {
		h.logger.Error("general journal", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func requiredDate(r *http.Request, key string) (time.Time, error) {
	return time.Parse(dateLayout, r.URL.Query().Get(key))
}
