package router

import (
	"log/slog"
	"net/http"
	"strings"

	attendanceCreate "asistencia-api/internal/http-server/handlers/attendance/create"
	attendanceGet "asistencia-api/internal/http-server/handlers/attendance/get"
	attendanceList "asistencia-api/internal/http-server/handlers/attendance/list"
	"asistencia-api/internal/http-server/handlers/health"
	holidayCreate "asistencia-api/internal/http-server/handlers/holidays/create"
	holidayGet "asistencia-api/internal/http-server/handlers/holidays/get"
	holidayList "asistencia-api/internal/http-server/handlers/holidays/list"
	scheduleCreate "asistencia-api/internal/http-server/handlers/schedules/create"
	scheduleGet "asistencia-api/internal/http-server/handlers/schedules/get"
	scheduleList "asistencia-api/internal/http-server/handlers/schedules/list"
	teacherCreate "asistencia-api/internal/http-server/handlers/teachers/create"
	teacherDelete "asistencia-api/internal/http-server/handlers/teachers/delete"
	teacherGet "asistencia-api/internal/http-server/handlers/teachers/get"
	teacherList "asistencia-api/internal/http-server/handlers/teachers/list"
	teacherSearch "asistencia-api/internal/http-server/handlers/teachers/search"
	teacherUpdate "asistencia-api/internal/http-server/handlers/teachers/update"
	"asistencia-api/internal/metrics"
	"asistencia-api/pkg/middleware/mwLogger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Service is everything the routes call into.
type Service interface {
	teacherList.TeacherLister
	teacherSearch.TeacherSearcher
	teacherGet.TeacherGetter
	teacherCreate.TeacherCreator
	teacherUpdate.TeacherUpdater
	teacherDelete.TeacherDeleter

	attendanceList.AttendanceLister
	attendanceGet.AttendanceGetter
	attendanceCreate.AttendanceCreator

	scheduleList.ScheduleLister
	scheduleGet.ScheduleGetter
	scheduleCreate.ScheduleCreator

	holidayList.HolidayLister
	holidayGet.HolidayGetter
	holidayCreate.HolidayCreator
}

type Deps struct {
	Log     *slog.Logger
	Service Service
	Pinger  health.Pinger
	// Metrics may be nil, in which case /metrics is not mounted.
	Metrics *metrics.Metrics
	// AllowedOrigin is a single origin, a comma separated list, or "*".
	AllowedOrigin string
}

func New(d Deps) http.Handler {
	log := d.Log
	service := d.Service

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins(d.AllowedOrigin),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Teachers. buscar is registered as a static segment so it wins over {id}.
	router.Get("/profesores", teacherList.New(log, service))
	router.Get("/profesores/buscar", teacherSearch.New(log, service))
	router.Get("/profesores/{id}", teacherGet.New(log, service))
	router.Post("/profesores", teacherCreate.New(log, service))
	router.Put("/profesores/{id}", teacherUpdate.New(log, service))
	router.Delete("/profesores/{id}", teacherDelete.New(log, service))

	// Attendance
	router.Get("/asistencias", attendanceList.New(log, service))
	router.Get("/asistencias/{id}", attendanceGet.New(log, service))
	router.Post("/asistencias", attendanceCreate.New(log, service))

	// Schedules
	router.Get("/horarios/profesor/{id_profesor}", scheduleList.New(log, service))
	router.Get("/horarios/{id}", scheduleGet.New(log, service))
	router.Post("/horarios", scheduleCreate.New(log, service))

	// Holidays
	router.Get("/feriados", holidayList.New(log, service))
	router.Get("/feriados/{id}", holidayGet.New(log, service))
	router.Post("/feriados", holidayCreate.New(log, service))

	if d.Pinger != nil {
		router.Get("/health", health.New(log, d.Pinger))
	}
	if d.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	return router
}

func origins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
