package handler

import (
	"net/http"

	"github.com/vinodrajapaksha/ttms-api/internal/usecases/calendaring"
)

// GetCalendarMonth serves ?month=YYYY-MM&nav=prev|next|today&date=YYYY-MM-DD.
func GetCalendarMonth(service calendaring.Calendarer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)
		query := r.URL.Query()

		month, err := service.Month(r.Context(), calendaring.MonthRequest{
			Month: query.Get("month"),
			Nav:   query.Get("nav"),
			Date:  query.Get("date"),
		})
		if err != nil {
			writeServiceError(w, r, err, "calendar month")
			return
		}

		writeJSON(w, r, http.StatusOK, month)
	})
}

func GetCalendarDay(service calendaring.Calendarer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		detail, err := service.Day(r.Context(), r.URL.Query().Get("date"))
		if err != nil {
			writeServiceError(w, r, err, "calendar day")
			return
		}

		writeJSON(w, r, http.StatusOK, detail)
	})
}
