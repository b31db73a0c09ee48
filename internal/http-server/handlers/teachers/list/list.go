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

type TeacherLister interface {
	ListTeachers(ctx context.Context) ([]api.Teacher, error)
}

func New(log *slog.Logger, lister TeacherLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		teachers, err := lister.ListTeachers(r.Context())
		if err != nil {
			log.Error("Failed to list teachers", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teachers listed", slog.Int("count", len(teachers)))

		render.JSON(w, r, teachers)
	}
}
