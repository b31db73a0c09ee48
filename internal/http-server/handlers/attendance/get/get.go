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

type AttendanceGetter interface {
	GetAttendance(ctx context.Context, id string) (*api.Attendance, error)
}

func New(log *slog.Logger, getter AttendanceGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendance.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		record, err := getter.GetAttendance(r.Context(), id)
		if err != nil {
			log.Error("Failed to get attendance", slog.String("id", id), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		render.JSON(w, r, record)
	}
}
