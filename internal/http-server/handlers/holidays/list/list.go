package list

import (
	"context"
	"log/slog"
	"net/http"

	"asistencia-api/api"
	"asistencia-api/pkg/response"
	"asistencia-api/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type HolidayLister interface {
	ListHolidays(ctx context.Context) ([]api.Holiday, error)
}

func New(log *slog.Logger, lister HolidayLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		holidays, err := lister.ListHolidays(r.Context())
		if err != nil {
			log.Error("Failed to list holidays", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Holidays listed", slog.Int("count", len(holidays)))

		render.JSON(w, r, holidays)
	}
}
