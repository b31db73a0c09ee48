package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"asistencia-api/internal/models"
)

// Querier is the statement runner the store is built on.
type Querier interface {
	Select(ctx context.Context, dest any, query string, args ...any) error
	Get(ctx context.Context, dest any, query string, args ...any) error
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

type Storage struct {
	q Querier
}

func New(q Querier) *Storage {
	return &Storage{q: q}
}

// #### profesor ####

const teacherColumns = `id, nombre, horas_segun_contrato, estado`

func (s *Storage) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	const op = "storage.sqlstore.ListTeachers"

	teachers := make([]models.Teacher, 0)

	err := s.q.Select(ctx, &teachers, `SELECT `+teacherColumns+` FROM profesor ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teachers, nil
}

// SearchTeachers matches an exact id or a substring of the name.
func (s *Storage) SearchTeachers(ctx context.Context, term string) ([]models.Teacher, error) {
	const op = "storage.sqlstore.SearchTeachers"

	teachers := make([]models.Teacher, 0)

	err := s.q.Select(ctx, &teachers,
		`SELECT `+teacherColumns+` FROM profesor
		WHERE id = ? OR nombre LIKE ?
		ORDER BY id`,
		term,
		"%"+escapeLike(term)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teachers, nil
}

func (s *Storage) GetTeacher(ctx context.Context, id string) (*models.Teacher, error) {
	const op = "storage.sqlstore.GetTeacher"

	var teacher models.Teacher

	err := s.q.Get(ctx, &teacher, `SELECT `+teacherColumns+` FROM profesor WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &teacher, nil
}

func (s *Storage) CreateTeacher(ctx context.Context, t *models.Teacher) (int64, error) {
	const op = "storage.sqlstore.CreateTeacher"

	n, err := s.q.Exec(ctx,
		`INSERT INTO profesor
		(id, nombre, horas_segun_contrato, estado, fecha_registro, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.ContractHours,
		t.Status,
		t.RegisteredOn,
		t.ModifiedOn,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// UpdateTeacher applies a partial update; nil patch fields keep the stored
// value.
func (s *Storage) UpdateTeacher(ctx context.Context, id string, p *models.TeacherPatch) (int64, error) {
	const op = "storage.sqlstore.UpdateTeacher"

	n, err := s.q.Exec(ctx,
		`UPDATE profesor SET
		nombre = COALESCE(?, nombre),
		horas_segun_contrato = COALESCE(?, horas_segun_contrato),
		estado = COALESCE(?, estado),
		fecha_modificacion = ?
		WHERE id = ?`,
		p.Name,
		p.ContractHours,
		p.Status,
		p.ModifiedOn,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Storage) DeleteTeacher(ctx context.Context, id string) (int64, error) {
	const op = "storage.sqlstore.DeleteTeacher"

	n, err := s.q.Exec(ctx, `DELETE FROM profesor WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// #### asistencia ####

const attendanceSelect = `SELECT
		a.id,
		a.id_profesor,
		p.nombre AS nombre_profesor,
		a.fecha,
		a.horas,
		a.tardanza,
		a.justificacion,
		a.estado,
		a.fecha_registro,
		a.fecha_modificacion
	FROM asistencia a
	JOIN profesor p ON a.id_profesor = p.id`

func (s *Storage) ListAttendance(ctx context.Context) ([]models.Attendance, error) {
	const op = "storage.sqlstore.ListAttendance"

	attendance := make([]models.Attendance, 0)

	err := s.q.Select(ctx, &attendance, attendanceSelect+` ORDER BY a.fecha DESC, a.id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return attendance, nil
}

func (s *Storage) GetAttendance(ctx context.Context, id string) (*models.Attendance, error) {
	const op = "storage.sqlstore.GetAttendance"

	var a models.Attendance

	err := s.q.Get(ctx, &a, attendanceSelect+` WHERE a.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &a, nil
}

func (s *Storage) CreateAttendance(ctx context.Context, a *models.Attendance) (int64, error) {
	const op = "storage.sqlstore.CreateAttendance"

	n, err := s.q.Exec(ctx,
		`INSERT INTO asistencia
		(id, id_profesor, fecha, horas, tardanza, justificacion, estado, fecha_registro, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.TeacherID,
		a.Date,
		a.Hours,
		a.Lateness,
		a.Justification,
		a.Status,
		a.RegisteredOn,
		a.ModifiedOn,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// #### horario ####

const scheduleColumns = `id, id_profesor, hora_entrada, hora_salida, estado, fecha_registro, fecha_modificacion`

func (s *Storage) ListSchedules(ctx context.Context, teacherID string) ([]models.Schedule, error) {
	const op = "storage.sqlstore.ListSchedules"

	schedules := make([]models.Schedule, 0)

	err := s.q.Select(ctx, &schedules,
		`SELECT `+scheduleColumns+` FROM horario WHERE id_profesor = ? ORDER BY hora_entrada ASC, id`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return schedules, nil
}

func (s *Storage) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	const op = "storage.sqlstore.GetSchedule"

	var schedule models.Schedule

	err := s.q.Get(ctx, &schedule, `SELECT `+scheduleColumns+` FROM horario WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &schedule, nil
}

func (s *Storage) CreateSchedule(ctx context.Context, sc *models.Schedule) (int64, error) {
	const op = "storage.sqlstore.CreateSchedule"

	n, err := s.q.Exec(ctx,
		`INSERT INTO horario
		(id, id_profesor, hora_entrada, hora_salida, estado, fecha_registro, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sc.ID,
		sc.TeacherID,
		sc.EntryTime,
		sc.ExitTime,
		sc.Status,
		sc.RegisteredOn,
		sc.ModifiedOn,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// #### feriados ####

const holidayColumns = `id, fecha, descripcion, estado, fecha_registro, fecha_modificacion`

func (s *Storage) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	const op = "storage.sqlstore.ListHolidays"

	holidays := make([]models.Holiday, 0)

	err := s.q.Select(ctx, &holidays, `SELECT `+holidayColumns+` FROM feriados ORDER BY fecha ASC, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return holidays, nil
}

func (s *Storage) GetHoliday(ctx context.Context, id string) (*models.Holiday, error) {
	const op = "storage.sqlstore.GetHoliday"

	var holiday models.Holiday

	err := s.q.Get(ctx, &holiday, `SELECT `+holidayColumns+` FROM feriados WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &holiday, nil
}

func (s *Storage) CreateHoliday(ctx context.Context, h *models.Holiday) (int64, error) {
	const op = "storage.sqlstore.CreateHoliday"

	n, err := s.q.Exec(ctx,
		`INSERT INTO feriados
		(id, fecha, descripcion, estado, fecha_registro, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID,
		h.Date,
		h.Description,
		h.Status,
		h.RegisteredOn,
		h.ModifiedOn,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in a search term literal under the
// default backslash escape of both PostgreSQL and MySQL.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
