package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/pkg/apiErrors"
	"github.com/vinodrajapaksha/ttms-api/pkg/middleware"
)

const activeSegment = "active"

func ListPromotions(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		promotions, err := service.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "list promotions")
			return
		}

		writeJSON(w, r, http.StatusOK, promotions)
	})
}

func ListActivePromotions(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		promotions, err := service.ListActive(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "list active promotions")
			return
		}

		writeJSON(w, r, http.StatusOK, promotions)
	})
}

func GetPromotion(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		promotion, err := service.Get(r.Context(), promotionID(r))
		if err != nil {
			writeServiceError(w, r, err, "get promotion")
			return
		}

		writeJSON(w, r, http.StatusOK, promotion)
	})
}

func CreatePromotion(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		var input domain.PromotionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "request body must be a promotion", nil)
			return
		}

		promotion, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "create promotion")
			return
		}

		writeJSON(w, r, http.StatusCreated, promotion)
	})
}

func UpdatePromotion(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		var input domain.PromotionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "request body must be a promotion", nil)
			return
		}

		promotion, err := service.Update(r.Context(), promotionID(r), input)
		if err != nil {
			writeServiceError(w, r, err, "update promotion")
			return
		}

		writeJSON(w, r, http.StatusOK, promotion)
	})
}

func TogglePromotion(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		promotion, err := service.ToggleActive(r.Context(), promotionID(r))
		if err != nil {
			writeServiceError(w, r, err, "toggle promotion")
			return
		}

		writeJSON(w, r, http.StatusOK, promotion)
	})
}

func DeletePromotion(service promoting.Promoter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = backendContext(r)

		if err := service.Delete(r.Context(), promotionID(r)); err != nil {
			writeServiceError(w, r, err, "delete promotion")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func promotionID(r *http.Request) domain.PromotionID {
	return domain.PromotionID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}

// PromotionByID serves GET /v1/promotions/:id. The public active list shares
// the route because httprouter rejects a static segment beside :id; every
// other id stays staff only.
func PromotionByID(service promoting.Promoter) http.Handler {
	active := ListActivePromotions(service)
	byID := middleware.StaffOnly()(GetPromotion(service))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if promotionID(r) == activeSegment {
			active.ServeHTTP(w, r)
			return
		}
		byID.ServeHTTP(w, r)
	})
}
