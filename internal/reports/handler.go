package reports

import (
	"net/http"

	apperrors "hotelbook/pkg/errors"
	httputil "hotelbook/pkg/http"
	"hotelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ReportHandler struct {
	exporter *Exporter
	guard    func(http.Handler) http.Handler
	log      *logger.Logger
}

// NewReportHandler wraps every route in guard, which is expected to enforce
// administrator credentials.
func NewReportHandler(exporter *Exporter, guard func(http.Handler) http.Handler, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		exporter: exporter,
		guard:    guard,
		log:      log,
	}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.exporter.Summary(r.Context(), period)
	if err != nil {
		h.log.Error("Failed to summarize reservations", "error", err)
		httputil.WriteError(w, apperrors.Persistence("Failed to read reservations", err))
		return
	}

	httputil.WriteSuccess(w, summary)
}

func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.exporter.Export(r.Context(), period)
	if err != nil {
		h.log.Error("Failed to export report", "error", err)
		httputil.WriteError(w, apperrors.Internal("Failed to export report", err))
		return
	}

	httputil.WriteCreated(w, result)
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/v1/reports/summary", h.guard(http.HandlerFunc(h.Summary)))
	router.Handler(http.MethodPost, "/api/v1/reports/export", h.guard(http.HandlerFunc(h.Export)))
}

func periodFromQuery(r *http.Request) (*Period, error) {
	query := r.URL.Query()
	period, err := ParsePeriod(query.Get("from"), query.Get("to"))
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	return period, nil
}
