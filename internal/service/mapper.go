package service

import (
	"asistencia-api/api"
	"asistencia-api/internal/models"
)

func toTeacher(t *models.Teacher) api.Teacher {
	return api.Teacher{
		ID:            t.ID,
		Name:          t.Name,
		ContractHours: t.ContractHours,
		Status:        t.Status,
	}
}

func toTeachers(rows []models.Teacher) []api.Teacher {
	result := make([]api.Teacher, 0, len(rows))
	for i := range rows {
		result = append(result, toTeacher(&rows[i]))
	}
	return result
}

func toAttendance(a *models.Attendance) api.Attendance {
	return api.Attendance{
		ID:            a.ID,
		TeacherID:     a.TeacherID,
		TeacherName:   a.TeacherName,
		Date:          a.Date,
		Hours:         a.Hours,
		Lateness:      a.Lateness,
		Justification: a.Justification,
		Status:        a.Status,
	}
}

func toSchedule(s *models.Schedule) api.Schedule {
	return api.Schedule{
		ID:           s.ID,
		TeacherID:    s.TeacherID,
		EntryTime:    s.EntryTime,
		ExitTime:     s.ExitTime,
		Status:       s.Status,
		RegisteredOn: s.RegisteredOn,
		ModifiedOn:   s.ModifiedOn,
	}
}

func toHoliday(h *models.Holiday) api.Holiday {
	return api.Holiday{
		ID:           h.ID,
		Date:         h.Date,
		Description:  h.Description,
		Status:       h.Status,
		RegisteredOn: h.RegisteredOn,
		ModifiedOn:   h.ModifiedOn,
	}
}
