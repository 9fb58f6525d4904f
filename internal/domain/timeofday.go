package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute resolution, stored as
// minutes since midnight. It maps to a postgres TIME column.
type TimeOfDay int

func ClockTime(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS". Seconds must be zero.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, second int
	switch n, _ := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); n {
	case 2, 3:
	default:
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || second != 0 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return ClockTime(hour, minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t-u) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

// Overlaps reports whether the half-open intervals [s1, e1) and
// [s2, e2) intersect.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && e1 > s2
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case time.Time:
		*t = ClockTime(v.Hour(), v.Minute())
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Scan(s)
}
