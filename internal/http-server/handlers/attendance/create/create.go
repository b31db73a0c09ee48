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

type AttendanceCreator interface {
	CreateAttendance(ctx context.Context, req *api.AttendanceCreateRequest) (*api.MutationResult, error)
}

type Request struct {
	api.AttendanceCreateRequest
}

func New(log *slog.Logger, creator AttendanceCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendance.create.New"

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

		res, err := creator.CreateAttendance(r.Context(), &req.AttendanceCreateRequest)
		if err != nil {
			log.Error("Failed to register attendance", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Attendance registered", slog.String("id", res.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, res)
	}
}
