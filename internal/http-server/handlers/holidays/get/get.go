package get

import (
	"context"
	"log/slog"
	"net/http"

	"asistencia-api/api"
	"asistencia-api/pkg/response"
	"asistencia-api/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type HolidayGetter interface {
	GetHoliday(ctx context.Context, id string) (*api.Holiday, error)
}

func New(log *slog.Logger, getter HolidayGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		holiday, err := getter.GetHoliday(r.Context(), id)
		if err != nil {
			log.Error("Failed to get holiday", slog.String("id", id), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		render.JSON(w, r, holiday)
	}
}
