package create

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

type HolidayCreator interface {
	CreateHoliday(ctx context.Context, req *api.HolidayCreateRequest) (*api.MutationResult, error)
}

type Request struct {
	api.HolidayCreateRequest
}

func New(log *slog.Logger, creator HolidayCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.holidays.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := response.DecodeJSON(r, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		res, err := creator.CreateHoliday(r.Context(), &req.HolidayCreateRequest)
		if err != nil {
			log.Error("Failed to create holiday", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Holiday created", slog.String("id", res.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, res)
	}
}
