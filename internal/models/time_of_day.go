package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock instant within a day, stored as seconds since midnight.
// It is persisted as an "HH:MM:SS" string so lexical order matches chronological order.
type TimeOfDay int

func NewTimeOfDay(hour int, minute int, second int) TimeOfDay {
	return TimeOfDay((hour*3600 + minute*60 + second) % secondsPerDay)
}

func TimeOfDayOf(value time.Time) TimeOfDay {
	return NewTimeOfDay(value.Hour(), value.Minute(), value.Second())
}

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return TimeOfDayOf(parsed), nil
		}
	}
	// Some drivers hand back a full timestamp for TIME columns.
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return TimeOfDayOf(parsed), nil
	}
	return 0, fmt.Errorf("invalid time of day %q", raw)
}

func (value TimeOfDay) Hour() int {
	return int(value) / 3600
}

func (value TimeOfDay) Minute() int {
	return (int(value) % 3600) / 60
}

func (value TimeOfDay) Second() int {
	return int(value) % 60
}

func (value TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", value.Hour(), value.Minute(), value.Second())
}

// Clock renders the value as "HH:MM".
func (value TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", value.Hour(), value.Minute())
}

func (value TimeOfDay) Value() (driver.Value, error) {
	return value.String(), nil
}

func (value *TimeOfDay) Scan(source any) error {
	switch typed := source.(type) {
	case nil:
		*value = 0
		return nil
	case string:
		parsed, err := ParseTimeOfDay(typed)
		if err != nil {
			return err
		}
		*value = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(typed))
		if err != nil {
			return err
		}
		*value = parsed
		return nil
	case time.Time:
		*value = TimeOfDayOf(typed)
		return nil
	default:
		return fmt.Errorf("unsupported time of day source %T", source)
	}
}

func (value TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(value.Clock())
}

func (value *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*value = parsed
	return nil
}
