package models

import "asistencia-api/api"

type Teacher struct {
	ID            string   `db:"id"`
	Name          string   `db:"nombre"`
	ContractHours *float64 `db:"horas_segun_contrato"`
	Status        *string  `db:"estado"`
	RegisteredOn  api.Date `db:"fecha_registro"`
	ModifiedOn    api.Date `db:"fecha_modificacion"`
}

// TeacherPatch holds the columns of a partial update. Nil keeps the stored value.
type TeacherPatch struct {
	Name          *string
	ContractHours *float64
	Status        *string
	ModifiedOn    api.Date
}

type Attendance struct {
	ID            string   `db:"id"`
	TeacherID     string   `db:"id_profesor"`
	TeacherName   string   `db:"nombre_profesor"`
	Date          api.Date `db:"fecha"`
	Hours         float64  `db:"horas"`
	Lateness      *float64 `db:"tardanza"`
	Justification *string  `db:"justificacion"`
	Status        *string  `db:"estado"`
	RegisteredOn  api.Date `db:"fecha_registro"`
	ModifiedOn    api.Date `db:"fecha_modificacion"`
}

type Schedule struct {
	ID           string    `db:"id"`
	TeacherID    string    `db:"id_profesor"`
	EntryTime    api.Clock `db:"hora_entrada"`
	ExitTime     api.Clock `db:"hora_salida"`
	Status       *string   `db:"estado"`
	RegisteredOn api.Date  `db:"fecha_registro"`
	ModifiedOn   api.Date  `db:"fecha_modificacion"`
}

type Holiday struct {
	ID           string   `db:"id"`
	Date         api.Date `db:"fecha"`
	Description  string   `db:"descripcion"`
	Status       *string  `db:"estado"`
	RegisteredOn api.Date `db:"fecha_registro"`
	ModifiedOn   api.Date `db:"fecha_modificacion"`
}
