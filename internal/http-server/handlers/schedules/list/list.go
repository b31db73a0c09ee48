package list

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

type ScheduleLister interface {
	ListSchedules(ctx context.Context, teacherID string) ([]api.Schedule, error)
}

// New lists the schedules of the teacher named by {id_profesor}.
func New(log *slog.Logger, lister ScheduleLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedules.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		teacherID := chi.URLParam(r, "id_profesor")

		schedules, err := lister.ListSchedules(r.Context(), teacherID)
		if err != nil {
			log.Error("Failed to list schedules", slog.String("id_profesor", teacherID), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Schedules listed", slog.String("id_profesor", teacherID), slog.Int("count", len(schedules)))

		render.JSON(w, r, schedules)
	}
}
