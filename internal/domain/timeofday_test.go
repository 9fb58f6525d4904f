package domain

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: ClockTime(8, 0)},
		{in: "8:00", want: ClockTime(8, 0)},
		{in: "12:30:00", want: ClockTime(12, 30)},
		{in: "17:00", want: ClockTime(17, 0)},
		{in: "24:00", want: ClockTime(24, 0)},
		{in: "12:30:15", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "24:01", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := ClockTime(9, 5).String(); got != "09:05:00" {
		t.Fatalf("String() = %q, want %q", got, "09:05:00")
	}
}

func TestTimeOfDaySub(t *testing.T) {
	if got := ClockTime(12, 30).Sub(ClockTime(12, 0)); got != 30*time.Minute {
		t.Fatalf("Sub = %v, want %v", got, 30*time.Minute)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 TimeOfDay
		want           bool
	}{
		{"identical", ClockTime(12, 0), ClockTime(12, 30), ClockTime(12, 0), ClockTime(12, 30), true},
		{"partial overlap", ClockTime(12, 0), ClockTime(12, 30), ClockTime(12, 15), ClockTime(12, 45), true},
		{"contained", ClockTime(12, 0), ClockTime(13, 0), ClockTime(12, 15), ClockTime(12, 30), true},
		{"touching end to start", ClockTime(12, 0), ClockTime(12, 30), ClockTime(12, 30), ClockTime(13, 0), false},
		{"touching start to end", ClockTime(12, 30), ClockTime(13, 0), ClockTime(12, 0), ClockTime(12, 30), false},
		{"disjoint", ClockTime(9, 0), ClockTime(9, 15), ClockTime(14, 0), ClockTime(14, 15), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// The predicate is symmetric.
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	if err := tod.Scan(time.Date(2000, 1, 1, 14, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if tod != ClockTime(14, 45) {
		t.Fatalf("Scan(time.Time) = %v, want %v", tod, ClockTime(14, 45))
	}

	if err := tod.Scan("09:15:00"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if tod != ClockTime(9, 15) {
		t.Fatalf("Scan(string) = %v, want %v", tod, ClockTime(9, 15))
	}

	if err := tod.Scan(42); err == nil {
		t.Fatalf("Scan(int) expected error")
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 23, 59, 0, 0, time.FixedZone("X", 3600))
	got := Day(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.UTC {
		t.Fatalf("Day = %v, want midnight UTC", got)
	}
	y, m, d := got.Date()
	if y != 2026 || m != time.March || d != 14 {
		t.Fatalf("Day = %v, want 2026-03-14", got)
	}
}
