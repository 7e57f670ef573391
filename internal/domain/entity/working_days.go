package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// WorkingDay is one entry of a doctor's weekly fallback schedule.
// Entries without StartTime/EndTime inherit the doctor's default hours.
type WorkingDay struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Available bool   `json:"available"`
	Active    bool   `json:"active"`
}

// NormalizedDay returns the weekday label lowercased and trimmed, the
// form used for matching against a target weekday.
func (w WorkingDay) NormalizedDay() string {
	return strings.ToLower(strings.TrimSpace(w.Day))
}

// WorkingDayList is stored as a JSONB column on doctor_profiles.
type WorkingDayList []WorkingDay

// Value implements driver.Valuer
func (l WorkingDayList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *WorkingDayList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := WorkingDayList{}
	err := json.Unmarshal(bytes, &result)
	*l = result
	return err
}
