package update

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

type TeacherUpdater interface {
	UpdateTeacher(ctx context.Context, id string, req *api.TeacherUpdateRequest) (*api.MutationResult, error)
}

type Request struct {
	api.TeacherUpdateRequest
}

func New(log *slog.Logger, updater TeacherUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := response.DecodeJSON(r, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Request body decoded", slog.String("id", id), slog.Any("request", req))

		res, err := updater.UpdateTeacher(r.Context(), id, &req.TeacherUpdateRequest)
		if err != nil {
			log.Error("Failed to update teacher", slog.String("id", id), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teacher updated", slog.String("id", id))

		render.JSON(w, r, res)
	}
}
