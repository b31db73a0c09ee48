package search

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

type TeacherSearcher interface {
	SearchTeachers(ctx context.Context, term string) ([]api.Teacher, error)
}

// New answers 404 when nothing matches, unlike the plain listing.
func New(log *slog.Logger, searcher TeacherSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.search.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		term := r.URL.Query().Get("q")

		teachers, err := searcher.SearchTeachers(r.Context(), term)
		if err != nil {
			log.Error("Failed to search teachers", slog.String("q", term), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teachers found", slog.String("q", term), slog.Int("count", len(teachers)))

		render.JSON(w, r, teachers)
	}
}
