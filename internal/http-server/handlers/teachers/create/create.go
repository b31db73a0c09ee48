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

type TeacherCreator interface {
	CreateTeacher(ctx context.Context, req *api.TeacherCreateRequest) (*api.MutationResult, error)
}

type Request struct {
	api.TeacherCreateRequest
}

func New(log *slog.Logger, creator TeacherCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.teachers.create.New"

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

		res, err := creator.CreateTeacher(r.Context(), &req.TeacherCreateRequest)
		if err != nil {
			log.Error("Failed to create teacher", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		log.Info("Teacher created", slog.String("id", res.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, res)
	}
}
