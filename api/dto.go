package api

// Teachers

type TeacherCreateRequest struct {
	ID            ID       `json:"id" validate:"required"`
	Name          string   `json:"nombre" validate:"required"`
	ContractHours *float64 `json:"horas_segun_contrato"`
	Status        *string  `json:"estado"`
}

// TeacherUpdateRequest is a partial update; nil fields keep their stored value.
type TeacherUpdateRequest struct {
	Name          *string  `json:"nombre"`
	ContractHours *float64 `json:"horas_segun_contrato"`
	Status        *string  `json:"estado"`
}

type Teacher struct {
	ID            string   `json:"id"`
	Name          string   `json:"nombre"`
	ContractHours *float64 `json:"horas_segun_contrato"`
	Status        *string  `json:"estado"`
}

// Attendance

type AttendanceCreateRequest struct {
	ID            ID       `json:"id" validate:"required"`
	TeacherID     ID       `json:"id_profesor" validate:"required"`
	Date          Date     `json:"fecha" validate:"required"`
	Hours         float64  `json:"horas" validate:"required"`
	Lateness      *float64 `json:"tardanza"`
	Justification *string  `json:"justificacion"`
	Status        *string  `json:"estado"`
}

type Attendance struct {
	ID            string   `json:"id"`
	TeacherID     string   `json:"id_profesor"`
	TeacherName   string   `json:"nombre_profesor"`
	Date          Date     `json:"fecha"`
	Hours         float64  `json:"horas"`
	Lateness      *float64 `json:"tardanza"`
	Justification *string  `json:"justificacion"`
	Status        *string  `json:"estado"`
}

// Schedules

type ScheduleCreateRequest struct {
	ID        ID      `json:"id" validate:"required"`
	TeacherID ID      `json:"id_profesor" validate:"required"`
	EntryTime Clock   `json:"hora_entrada" validate:"required"`
	ExitTime  Clock   `json:"hora_salida" validate:"required"`
	Status    *string `json:"estado"`
}

type Schedule struct {
	ID           string  `json:"id"`
	TeacherID    string  `json:"id_profesor"`
	EntryTime    Clock   `json:"hora_entrada"`
	ExitTime     Clock   `json:"hora_salida"`
	Status       *string `json:"estado"`
	RegisteredOn Date    `json:"fecha_registro"`
	ModifiedOn   Date    `json:"fecha_modificacion"`
}

// Holidays

type HolidayCreateRequest struct {
	ID          ID      `json:"id" validate:"required"`
	Date        Date    `json:"fecha" validate:"required"`
	Description string  `json:"descripcion" validate:"required"`
	Status      *string `json:"estado"`
}

type Holiday struct {
	ID           string  `json:"id"`
	Date         Date    `json:"fecha"`
	Description  string  `json:"descripcion"`
	Status       *string `json:"estado"`
	RegisteredOn Date    `json:"fecha_registro"`
	ModifiedOn   Date    `json:"fecha_modificacion"`
}

// MutationResult is returned by every create, update and delete.
type MutationResult struct {
	Message      string `json:"message"`
	ID           string `json:"id"`
	AffectedRows int64  `json:"affectedRows"`
}
