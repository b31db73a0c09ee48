package service

import (
	"context"
	"fmt"
	"time"

	"asistencia-api/api"
	"asistencia-api/internal/apperr"
	"asistencia-api/internal/lock"
	"asistencia-api/internal/models"
	"asistencia-api/internal/validation"
)

const createLockTTL = 10 * time.Second

const msgCreateInProgress = "another create request for this id is in progress, retry later"

type Service struct {
	store    Store
	locker   lock.Locker
	validate *validation.Validator
	now      func() time.Time
}

func NewService(store Store, locker lock.Locker) *Service {
	return &Service{
		store:    store,
		locker:   locker,
		validate: validation.New(),
		now:      time.Now,
	}
}

type Store interface {
	// Teachers
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	SearchTeachers(ctx context.Context, term string) ([]models.Teacher, error)
	GetTeacher(ctx context.Context, id string) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, t *models.Teacher) (int64, error)
	UpdateTeacher(ctx context.Context, id string, p *models.TeacherPatch) (int64, error)
	DeleteTeacher(ctx context.Context, id string) (int64, error)

	// Attendance
	ListAttendance(ctx context.Context) ([]models.Attendance, error)
	GetAttendance(ctx context.Context, id string) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, a *models.Attendance) (int64, error)

	// Schedules
	ListSchedules(ctx context.Context, teacherID string) ([]models.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	CreateSchedule(ctx context.Context, s *models.Schedule) (int64, error)

	// Holidays
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	GetHoliday(ctx context.Context, id string) (*models.Holiday, error)
	CreateHoliday(ctx context.Context, h *models.Holiday) (int64, error)
}

func (s *Service) today() api.Date {
	return api.DateOf(s.now().UTC())
}

// withCreateLock serializes creates of the same id. A held lease means a
// concurrent create of that id is in flight; it may still fail, so the
// conflict does not claim the id exists.
func (s *Service) withCreateLock(ctx context.Context, key string, fn func() error) error {
	const op = "service.withCreateLock"

	token, ok, err := s.locker.Lock(ctx, key, createLockTTL)
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("%s: %w", op, err))
	}
	if !ok {
		return apperr.Conflict(msgCreateInProgress, nil)
	}
	defer func() {
		_ = s.locker.Unlock(context.WithoutCancel(ctx), key, token)
	}()

	return fn()
}

// Teachers

func (s *Service) ListTeachers(ctx context.Context) ([]api.Teacher, error) {
	const op = "service.ListTeachers"

	teachers, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toTeachers(teachers), nil
}

func (s *Service) SearchTeachers(ctx context.Context, term string) ([]api.Teacher, error) {
	const op = "service.SearchTeachers"

	if err := s.validate.SearchTerm(term); err != nil {
		return nil, err
	}

	teachers, err := s.store.SearchTeachers(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(teachers) == 0 {
		return nil, apperr.NotFound("no teachers match the search term")
	}

	return toTeachers(teachers), nil
}

func (s *Service) GetTeacher(ctx context.Context, id string) (*api.Teacher, error) {
	const op = "service.GetTeacher"

	teacher, err := s.store.GetTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Reword(err, apperr.KindNotFound, "teacher not found"))
	}

	t := toTeacher(teacher)
	return &t, nil
}

func (s *Service) CreateTeacher(ctx context.Context, req *api.TeacherCreateRequest) (*api.MutationResult, error) {
	const op = "service.CreateTeacher"

	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	today := s.today()
	teacher := &models.Teacher{
		ID:            string(req.ID),
		Name:          req.Name,
		ContractHours: req.ContractHours,
		Status:        req.Status,
		RegisteredOn:  today,
		ModifiedOn:    today,
	}

	var affected int64
	err := s.withCreateLock(ctx, "profesor:"+string(req.ID), func() error {
		var err error
		affected, err = s.store.CreateTeacher(ctx, teacher)
		return apperr.Reword(err, apperr.KindConflict, "teacher id already exists")
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MutationResult{
		Message:      "teacher created",
		ID:           string(req.ID),
		AffectedRows: affected,
	}, nil
}

func (s *Service) UpdateTeacher(ctx context.Context, id string, req *api.TeacherUpdateRequest) (*api.MutationResult, error) {
	const op = "service.UpdateTeacher"

	if err := s.validate.TeacherUpdate(req); err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateTeacher(ctx, id, &models.TeacherPatch{
		Name:          req.Name,
		ContractHours: req.ContractHours,
		Status:        req.Status,
		ModifiedOn:    s.today(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return nil, apperr.NotFound("teacher not found")
	}

	return &api.MutationResult{
		Message:      "teacher updated",
		ID:           id,
		AffectedRows: affected,
	}, nil
}

func (s *Service) DeleteTeacher(ctx context.Context, id string) (*api.MutationResult, error) {
	const op = "service.DeleteTeacher"

	affected, err := s.store.DeleteTeacher(ctx, id)
	if err != nil {
		err = apperr.Recast(err, apperr.KindReferential, apperr.KindConflict,
			"teacher is still referenced by attendance or schedules")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return nil, apperr.NotFound("teacher not found")
	}

	return &api.MutationResult{
		Message:      "teacher deleted",
		ID:           id,
		AffectedRows: affected,
	}, nil
}

// Attendance

func (s *Service) ListAttendance(ctx context.Context) ([]api.Attendance, error) {
	const op = "service.ListAttendance"

	rows, err := s.store.ListAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.Attendance, 0, len(rows))
	for i := range rows {
		result = append(result, toAttendance(&rows[i]))
	}

	return result, nil
}

func (s *Service) GetAttendance(ctx context.Context, id string) (*api.Attendance, error) {
	const op = "service.GetAttendance"

	row, err := s.store.GetAttendance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Reword(err, apperr.KindNotFound, "attendance not found"))
	}

	a := toAttendance(row)
	return &a, nil
}

func (s *Service) CreateAttendance(ctx context.Context, req *api.AttendanceCreateRequest) (*api.MutationResult, error) {
	const op = "service.CreateAttendance"

	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	today := s.today()
	attendance := &models.Attendance{
		ID:            string(req.ID),
		TeacherID:     string(req.TeacherID),
		Date:          req.Date,
		Hours:         req.Hours,
		Lateness:      req.Lateness,
		Justification: req.Justification,
		Status:        req.Status,
		RegisteredOn:  today,
		ModifiedOn:    today,
	}

	var affected int64
	err := s.withCreateLock(ctx, "asistencia:"+string(req.ID), func() error {
		var err error
		affected, err = s.store.CreateAttendance(ctx, attendance)
		err = apperr.Reword(err, apperr.KindReferential, "teacher id does not exist")
		return apperr.Reword(err, apperr.KindConflict, "attendance id already exists")
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MutationResult{
		Message:      "attendance registered",
		ID:           string(req.ID),
		AffectedRows: affected,
	}, nil
}

// Schedules

func (s *Service) ListSchedules(ctx context.Context, teacherID string) ([]api.Schedule, error) {
	const op = "service.ListSchedules"

	rows, err := s.store.ListSchedules(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.Schedule, 0, len(rows))
	for i := range rows {
		result = append(result, toSchedule(&rows[i]))
	}

	return result, nil
}

func (s *Service) GetSchedule(ctx context.Context, id string) (*api.Schedule, error) {
	const op = "service.GetSchedule"

	row, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Reword(err, apperr.KindNotFound, "schedule not found"))
	}

	sc := toSchedule(row)
	return &sc, nil
}

func (s *Service) CreateSchedule(ctx context.Context, req *api.ScheduleCreateRequest) (*api.MutationResult, error) {
	const op = "service.CreateSchedule"

	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	today := s.today()
	schedule := &models.Schedule{
		ID:           string(req.ID),
		TeacherID:    string(req.TeacherID),
		EntryTime:    req.EntryTime,
		ExitTime:     req.ExitTime,
		Status:       req.Status,
		RegisteredOn: today,
		ModifiedOn:   today,
	}

	var affected int64
	err := s.withCreateLock(ctx, "horario:"+string(req.ID), func() error {
		var err error
		affected, err = s.store.CreateSchedule(ctx, schedule)
		err = apperr.Reword(err, apperr.KindReferential, "teacher id does not exist")
		return apperr.Reword(err, apperr.KindConflict, "schedule id already exists")
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MutationResult{
		Message:      "schedule created",
		ID:           string(req.ID),
		AffectedRows: affected,
	}, nil
}

// Holidays

func (s *Service) ListHolidays(ctx context.Context) ([]api.Holiday, error) {
	const op = "service.ListHolidays"

	rows, err := s.store.ListHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]api.Holiday, 0, len(rows))
	for i := range rows {
		result = append(result, toHoliday(&rows[i]))
	}

	return result, nil
}

func (s *Service) GetHoliday(ctx context.Context, id string) (*api.Holiday, error) {
	const op = "service.GetHoliday"

	row, err := s.store.GetHoliday(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Reword(err, apperr.KindNotFound, "holiday not found"))
	}

	h := toHoliday(row)
	return &h, nil
}

func (s *Service) CreateHoliday(ctx context.Context, req *api.HolidayCreateRequest) (*api.MutationResult, error) {
	const op = "service.CreateHoliday"

	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	today := s.today()
	holiday := &models.Holiday{
		ID:           string(req.ID),
		Date:         req.Date,
		Description:  req.Description,
		Status:       req.Status,
		RegisteredOn: today,
		ModifiedOn:   today,
	}

	var affected int64
	err := s.withCreateLock(ctx, "feriado:"+string(req.ID), func() error {
		var err error
		affected, err = s.store.CreateHoliday(ctx, holiday)
		return apperr.Reword(err, apperr.KindConflict, "holiday id already exists")
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MutationResult{
		Message:      "holiday created",
		ID:           string(req.ID),
		AffectedRows: affected,
	}, nil
}
