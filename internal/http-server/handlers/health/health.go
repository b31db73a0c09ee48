package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"asistencia-api/pkg/response"
	"asistencia-api/pkg/sl"

	"github.com/go-chi/render"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status string `json:"status"`
}

// New reports 200 while the database answers a ping and 503 otherwise.
func New(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Warn("Database unreachable", slog.String("op", op), sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		render.JSON(w, r, Status{Status: "ok"})
	}
}
