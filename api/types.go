package api

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// ID is a client supplied identifier. JSON numbers are accepted and kept in
// their literal form, so {"id": 5} and {"id": "5"} name the same row.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*id = ID(strings.TrimSpace(x))
	case json.Number:
		*id = ID(x.String())
	default:
		return fmt.Errorf("id must be a string or a number, got %s", b)
	}
	return nil
}

// Date is a calendar date carried as YYYY-MM-DD on the wire and in SQL.
type Date string

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date(t.Format(DateLayout)), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t.Format(DateLayout)), nil
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		*d = parsed
		return err
	case string:
		parsed, err := ParseDate(v)
		*d = parsed
		return err
	default:
		return fmt.Errorf("cannot scan %T into api.Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Clock is a time of day carried as HH:MM:SS.
type Clock string

func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{ClockLayout, "15:04", "15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock(t.Format(ClockLayout)), nil
		}
	}
	return "", fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = ""
		return nil
	case time.Time:
		*c = Clock(v.Format(ClockLayout))
		return nil
	case []byte:
		parsed, err := ParseClock(string(v))
		*c = parsed
		return err
	case string:
		parsed, err := ParseClock(v)
		*c = parsed
		return err
	default:
		return fmt.Errorf("cannot scan %T into api.Clock", src)
	}
}

func (c Clock) Value() (driver.Value, error) {
	if c == "" {
		return nil, nil
	}
	return string(c), nil
}
