package delete

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

type TeacherDeleter interface {
	DeleteTeacher(ctx context.Context, id string) (*api.MutationResult, error)
}

func New(log *slog.Logger, deleter TeacherDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		res, err := deleter.DeleteTeacher(r.Context(), id)
		if err != nil {
			log.Error("Failed to delete teacher", slog.String("id", id), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teacher deleted", slog.String("id", id))

		render.JSON(w, r, res)
	}
}
