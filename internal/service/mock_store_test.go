package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"asistencia-api/internal/apperr"
	"asistencia-api/internal/models"
)

// memStore mimics the database constraints the service relies on: unique
// ids, teacher foreign keys and the listing orders.
type memStore struct {
	mu         sync.Mutex
	teachers   map[string]models.Teacher
	attendance map[string]models.Attendance
	schedules  map[string]models.Schedule
	holidays   map[string]models.Holiday

	// forced error for every call when set
	err error
}

func newMemStore() *memStore {
	return &memStore{
		teachers:   map[string]models.Teacher{},
		attendance: map[string]models.Attendance{},
		schedules:  map[string]models.Schedule{},
		holidays:   map[string]models.Holiday{},
	}
}

var (
	errDuplicate = errors.New("duplicate key value violates unique constraint")
	errDangling  = errors.New("violates foreign key constraint")
)

func (m *memStore) ListTeachers(_ context.Context) ([]models.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SearchTeachers(_ context.Context, term string) ([]models.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Teacher, 0)
	for _, t := range m.teachers {
		if t.ID == term || strings.Contains(t.Name, term) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) GetTeacher(_ context.Context, id string) (*models.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.teachers[id]
	if !ok {
		return nil, apperr.NotFound("")
	}
	return &t, nil
}

func (m *memStore) CreateTeacher(_ context.Context, t *models.Teacher) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.teachers[t.ID]; ok {
		return 0, apperr.Conflict("", errDuplicate)
	}
	m.teachers[t.ID] = *t
	return 1, nil
}

func (m *memStore) UpdateTeacher(_ context.Context, id string, p *models.TeacherPatch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	t, ok := m.teachers[id]
	if !ok {
		return 0, nil
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.ContractHours != nil {
		t.ContractHours = p.ContractHours
	}
	if p.Status != nil {
		t.Status = p.Status
	}
	t.ModifiedOn = p.ModifiedOn
	m.teachers[id] = t
	return 1, nil
}

func (m *memStore) DeleteTeacher(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.teachers[id]; !ok {
		return 0, nil
	}
	for _, a := range m.attendance {
		if a.TeacherID == id {
			return 0, apperr.Referential("", errDangling)
		}
	}
	delete(m.teachers, id)
	return 1, nil
}

func (m *memStore) ListAttendance(_ context.Context) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Attendance, 0, len(m.attendance))
	for _, a := range m.attendance {
		a.TeacherName = m.teachers[a.TeacherID].Name
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *memStore) GetAttendance(_ context.Context, id string) (*models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attendance[id]
	if !ok {
		return nil, apperr.NotFound("")
	}
	a.TeacherName = m.teachers[a.TeacherID].Name
	return &a, nil
}

func (m *memStore) CreateAttendance(_ context.Context, a *models.Attendance) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teachers[a.TeacherID]; !ok {
		return 0, apperr.Referential("", errDangling)
	}
	if _, ok := m.attendance[a.ID]; ok {
		return 0, apperr.Conflict("", errDuplicate)
	}
	m.attendance[a.ID] = *a
	return 1, nil
}

func (m *memStore) ListSchedules(_ context.Context, teacherID string) ([]models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Schedule, 0)
	for _, s := range m.schedules {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime < out[j].EntryTime })
	return out, nil
}

func (m *memStore) GetSchedule(_ context.Context, id string) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, apperr.NotFound("")
	}
	return &s, nil
}

func (m *memStore) CreateSchedule(_ context.Context, s *models.Schedule) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teachers[s.TeacherID]; !ok {
		return 0, apperr.Referential("", errDangling)
	}
	if _, ok := m.schedules[s.ID]; ok {
		return 0, apperr.Conflict("", errDuplicate)
	}
	m.schedules[s.ID] = *s
	return 1, nil
}

func (m *memStore) ListHolidays(_ context.Context) ([]models.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memStore) GetHoliday(_ context.Context, id string) (*models.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holidays[id]
	if !ok {
		return nil, apperr.NotFound("")
	}
	return &h, nil
}

func (m *memStore) CreateHoliday(_ context.Context, h *models.Holiday) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.holidays[h.ID]; ok {
		return 0, apperr.Conflict("", errDuplicate)
	}
	m.holidays[h.ID] = *h
	return 1, nil
}

// stubLocker returns a fixed Lock outcome.
type stubLocker struct {
	held bool
	err  error
}

func (l *stubLocker) Lock(context.Context, string, time.Duration) (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	return "", !l.held, nil
}

func (l *stubLocker) Unlock(context.Context, string, string) error { return nil }

func (l *stubLocker) Close() error { return nil }
