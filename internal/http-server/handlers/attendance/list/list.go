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

type AttendanceLister interface {
	ListAttendance(ctx context.Context) ([]api.Attendance, error)
}

// New lists every attendance record, newest date first.
func New(log *slog.Logger, lister AttendanceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendance.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		records, err := lister.ListAttendance(r.Context())
		if err != nil {
			log.Error("Failed to list attendance", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Attendance listed", slog.Int("count", len(records)))

		render.JSON(w, r, records)
	}
}
