package services

import "time"

// CalendarDay keeps the calendar date of value as seen in its own location and
// returns it as UTC midnight, the form dates are stored in.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateAtLocation is the calendar day of value as seen in location, UTC when nil.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDay(value.In(location))
}

// ParseDay parses a YYYY-MM-DD form value; the empty string yields nil.
func ParseDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	day := CalendarDay(parsed)
	return &day, nil
}
