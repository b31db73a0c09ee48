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

type TeacherGetter interface {
	GetTeacher(ctx context.Context, id string) (*api.Teacher, error)
}

func New(log *slog.Logger, getter TeacherGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		teacher, err := getter.GetTeacher(r.Context(), id)
		if err != nil {
			log.Error("Failed to get teacher", slog.String("id", id), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teacher retrieved", slog.String("id", id))

		render.JSON(w, r, teacher)
	}
}
