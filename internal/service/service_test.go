package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"asistencia-api/api"
	"asistencia-api/internal/apperr"
	"asistencia-api/internal/lock"
)

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(store, lock.NewLocalLock())
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }
	return svc, store
}

func ptr[T any](v T) *T { return &v }

func mustCreateTeacher(t *testing.T, svc *Service, id, name string) {
	t.Helper()
	if _, err := svc.CreateTeacher(context.Background(), &api.TeacherCreateRequest{ID: api.ID(id), Name: name}); err != nil {
		t.Fatalf("CreateTeacher(%s): %v", id, err)
	}
}

func TestCreateTeacherRoundTrip(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	res, err := svc.CreateTeacher(ctx, &api.TeacherCreateRequest{
		ID:            "P1",
		Name:          "Ana",
		ContractHours: ptr(20.0),
		Status:        ptr("activo"),
	})
	if err != nil {
		t.Fatalf("CreateTeacher: %v", err)
	}
	if res.ID != "P1" || res.AffectedRows != 1 || res.Message == "" {
		t.Fatalf("unexpected result %+v", res)
	}

	got, err := svc.GetTeacher(ctx, "P1")
	if err != nil {
		t.Fatalf("GetTeacher: %v", err)
	}
	if got.Name != "Ana" || *got.ContractHours != 20 || *got.Status != "activo" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	stored := store.teachers["P1"]
	if stored.RegisteredOn != "2026-10-15" || stored.ModifiedOn != "2026-10-15" {
		t.Errorf("dates not stamped server side: %+v", stored)
	}
}

func TestCreateTeacherDuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService()
	mustCreateTeacher(t, svc, "P1", "Ana")

	_, err := svc.CreateTeacher(context.Background(), &api.TeacherCreateRequest{ID: "P1", Name: "Otra"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if msg := apperr.As(err).Text(); msg != "teacher id already exists" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCreateTeacherValidatesBeforeStore(t *testing.T) {
	svc, store := newTestService()
	store.err = errors.New("store must not be called")

	_, err := svc.CreateTeacher(context.Background(), &api.TeacherCreateRequest{ID: "P1"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateWhileLockHeldIsConflict(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, &stubLocker{held: true})

	_, err := svc.CreateTeacher(context.Background(), &api.TeacherCreateRequest{ID: "P1", Name: "Ana"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(store.teachers) != 0 {
		t.Error("store must not be written while the lock is held")
	}
	if msg := apperr.As(err).Text(); strings.Contains(msg, "already exists") {
		t.Errorf("in-flight create must not claim the id exists: %q", msg)
	}
}

func TestDatesStampedInUTC(t *testing.T) {
	svc, store := newTestService()
	// 20:00 on the 14th at UTC-5 is 01:00 on the 15th in UTC
	svc.now = func() time.Time {
		return time.Date(2026, 10, 14, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	}

	mustCreateTeacher(t, svc, "P1", "Ana")

	if got := store.teachers["P1"].RegisteredOn; got != "2026-10-15" {
		t.Errorf("fecha_registro = %s, want 2026-10-15", got)
	}
}

func TestCreateWithBrokenLockerIsUnavailable(t *testing.T) {
	svc := NewService(newMemStore(), &stubLocker{err: errors.New("redis down")})

	_, err := svc.CreateHoliday(context.Background(), &api.HolidayCreateRequest{ID: "F1", Date: "2026-12-25", Description: "Navidad"})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestCreateAttendanceUnknownTeacher(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateAttendance(context.Background(), &api.AttendanceCreateRequest{
		ID: "A1", TeacherID: "ghost", Date: "2026-10-01", Hours: 6,
	})
	if !apperr.Is(err, apperr.KindReferential) {
		t.Fatalf("expected referential error, got %v", err)
	}
	if msg := apperr.As(err).Text(); msg != "teacher id does not exist" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCreateScheduleUnknownTeacher(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateSchedule(context.Background(), &api.ScheduleCreateRequest{
		ID: "H1", TeacherID: "ghost", EntryTime: "08:00:00", ExitTime: "12:00:00",
	})
	if !apperr.Is(err, apperr.KindReferential) {
		t.Fatalf("expected referential error, got %v", err)
	}
}

func TestSearchVersusList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	all, err := svc.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("ListTeachers: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("empty table must list as empty slice, got %#v", all)
	}

	_, err = svc.SearchTeachers(ctx, "nadie")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("empty search must be not found, got %v", err)
	}

	mustCreateTeacher(t, svc, "P1", "Ana María")
	mustCreateTeacher(t, svc, "P2", "Luis")

	found, err := svc.SearchTeachers(ctx, "María")
	if err != nil || len(found) != 1 || found[0].ID != "P1" {
		t.Fatalf("substring search: %+v %v", found, err)
	}

	found, err = svc.SearchTeachers(ctx, "P2")
	if err != nil || len(found) != 1 || found[0].Name != "Luis" {
		t.Fatalf("id search: %+v %v", found, err)
	}
}

func TestSearchRequiresTerm(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.SearchTeachers(context.Background(), ""); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTeacher(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTeacher(ctx, &api.TeacherCreateRequest{ID: "P1", Name: "Ana", ContractHours: ptr(20.0), Status: ptr("activo")})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateTeacher(ctx, "P1", &api.TeacherUpdateRequest{}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("update without fields must be a validation error, got %v", err)
	}

	svc.now = func() time.Time { return time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC) }
	res, err := svc.UpdateTeacher(ctx, "P1", &api.TeacherUpdateRequest{Status: ptr("inactivo")})
	if err != nil {
		t.Fatalf("UpdateTeacher: %v", err)
	}
	if res.AffectedRows != 1 || res.ID != "P1" {
		t.Errorf("unexpected result %+v", res)
	}

	got := store.teachers["P1"]
	if got.Name != "Ana" || *got.ContractHours != 20 || *got.Status != "inactivo" {
		t.Errorf("absent fields must stay unchanged: %+v", got)
	}
	if got.ModifiedOn != "2026-11-02" || got.RegisteredOn != "2026-10-15" {
		t.Errorf("modification date not refreshed: %+v", got)
	}

	if _, err := svc.UpdateTeacher(ctx, "P404", &api.TeacherUpdateRequest{Name: ptr("x")}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("update of missing teacher must be not found, got %v", err)
	}
}

func TestDeleteTeacher(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.DeleteTeacher(ctx, "P1"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("delete of missing teacher must be not found, got %v", err)
	}

	mustCreateTeacher(t, svc, "P1", "Ana")

	res, err := svc.DeleteTeacher(ctx, "P1")
	if err != nil || res.AffectedRows != 1 {
		t.Fatalf("DeleteTeacher: %+v %v", res, err)
	}

	if _, err := svc.GetTeacher(ctx, "P1"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("get after delete must be not found, got %v", err)
	}
}

func TestDeleteReferencedTeacherIsConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreateTeacher(t, svc, "P1", "Ana")
	_, err := svc.CreateAttendance(ctx, &api.AttendanceCreateRequest{ID: "A1", TeacherID: "P1", Date: "2026-10-01", Hours: 6})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.DeleteTeacher(ctx, "P1"); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListAttendanceNewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreateTeacher(t, svc, "P1", "Ana")
	for i, d := range []api.Date{"2026-10-02", "2026-10-09", "2026-10-05"} {
		req := &api.AttendanceCreateRequest{ID: api.ID(rune('a' + i)), TeacherID: "P1", Date: d, Hours: 4}
		if _, err := svc.CreateAttendance(ctx, req); err != nil {
			t.Fatalf("CreateAttendance: %v", err)
		}
	}

	rows, err := svc.ListAttendance(ctx)
	if err != nil {
		t.Fatalf("ListAttendance: %v", err)
	}
	want := []api.Date{"2026-10-09", "2026-10-05", "2026-10-02"}
	for i := range want {
		if rows[i].Date != want[i] {
			t.Errorf("position %d: got %s, want %s", i, rows[i].Date, want[i])
		}
		if rows[i].TeacherName != "Ana" {
			t.Errorf("teacher name not joined: %+v", rows[i])
		}
	}
}

func TestAttendanceRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustCreateTeacher(t, svc, "P1", "Ana")

	req := &api.AttendanceCreateRequest{
		ID: "A1", TeacherID: "P1", Date: "2026-10-01", Hours: 6,
		Lateness: ptr(15.0), Justification: ptr("tráfico"), Status: ptr("tarde"),
	}
	if _, err := svc.CreateAttendance(ctx, req); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetAttendance(ctx, "A1")
	if err != nil {
		t.Fatalf("GetAttendance: %v", err)
	}
	if got.TeacherID != "P1" || got.Date != "2026-10-01" || got.Hours != 6 || *got.Lateness != 15 || *got.Justification != "tráfico" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSchedulesAndHolidays(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustCreateTeacher(t, svc, "P1", "Ana")

	for _, sc := range []api.ScheduleCreateRequest{
		{ID: "H2", TeacherID: "P1", EntryTime: "14:00:00", ExitTime: "18:00:00"},
		{ID: "H1", TeacherID: "P1", EntryTime: "08:00:00", ExitTime: "12:00:00"},
	} {
		if _, err := svc.CreateSchedule(ctx, &sc); err != nil {
			t.Fatalf("CreateSchedule: %v", err)
		}
	}

	schedules, err := svc.ListSchedules(ctx, "P1")
	if err != nil || len(schedules) != 2 || schedules[0].ID != "H1" {
		t.Fatalf("schedules must be ordered by entry time: %+v %v", schedules, err)
	}

	empty, err := svc.ListSchedules(ctx, "P9")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("unknown teacher must list empty: %#v %v", empty, err)
	}

	if _, err := svc.CreateHoliday(ctx, &api.HolidayCreateRequest{ID: "F1", Date: "2026-12-25", Description: "Navidad"}); err != nil {
		t.Fatal(err)
	}
	_, err = svc.CreateHoliday(ctx, &api.HolidayCreateRequest{ID: "F1", Date: "2026-01-01", Description: "Año nuevo"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate holiday must conflict, got %v", err)
	}

	h, err := svc.GetHoliday(ctx, "F1")
	if err != nil || h.Description != "Navidad" || h.RegisteredOn != "2026-10-15" {
		t.Fatalf("GetHoliday: %+v %v", h, err)
	}

	if _, err := svc.GetSchedule(ctx, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestStoreFailureStaysClassified(t *testing.T) {
	svc, store := newTestService()
	store.err = apperr.Unavailable(errors.New("pool not initialized"))

	if _, err := svc.ListTeachers(context.Background()); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
