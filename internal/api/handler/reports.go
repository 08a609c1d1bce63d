package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/reporting"
	"github.com/vinodrajapaksha/ttms-api/pkg/apiErrors"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

func reportRequest(r *http.Request) reporting.Request {
	query := r.URL.Query()
	return reporting.Request{
		Tab:  domain.ReportTab(httprouter.ParamsFromContext(r.Context()).ByName("tab")),
		Date: query.Get("date"),
		Nav:  query.Get("nav"),
	}
}

func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		report, err := service.Report(r.Context(), reportRequest(r))
		if err != nil {
			writeServiceError(w, r, err, "sales report")
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	})
}

// ExportReport renders the whole PDF before writing headers so a failed
// export still gets a JSON error body.
func ExportReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		var buf bytes.Buffer
		name, err := service.Export(r.Context(), reportRequest(r), &buf)
		if err != nil {
			writeServiceError(w, r, err, "export report")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)

		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("api: export download interrupted")
		}
	})
}

func GetTrend(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		count := 0
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "count must be a whole number", nil)
				return
			}
			count = n
		}

		granularity := domain.ReportTab(httprouter.ParamsFromContext(r.Context()).ByName("sub"))
		rows, err := service.Trend(r.Context(), granularity, count)
		if err != nil {
			writeServiceError(w, r, err, "sales trend")
			return
		}

		writeJSON(w, r, http.StatusOK, rows)
	})
}

// ReportSubresource serves /v1/reports/:tab/:sub. httprouter cannot mix the
// static "trend" segment with the :tab wildcard, so both shapes share a route:
// /v1/reports/trend/:granularity and /v1/reports/:tab/export.
func ReportSubresource(service reporting.Reporter) http.Handler {
	trend := GetTrend(service)
	export := ExportReport(service)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		switch {
		case params.ByName("tab") == "trend":
			trend.ServeHTTP(w, r)
		case params.ByName("sub") == "export":
			export.ServeHTTP(w, r)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown report resource", nil)
		}
	})
}
