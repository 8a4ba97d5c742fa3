package timeofday

import (
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"12:05", 725},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q): неожиданная ошибка: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ToMinutes(%q) = %d, ожидалось %d", tt.in, got, tt.want)
		}
	}
}

func TestToMinutes_InvalidFormat(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "12-30", "12:3", " 12:30", "ab:cd", "12:30:00"} {
		if _, err := ToMinutes(in); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ToMinutes(%q): ожидалась ErrInvalidTime, получено %v", in, err)
		}
	}
}

func TestRoundTrip_AllMinutesOfDay(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s := ToTimeString(m)
		back, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(%q): %v", s, err)
		}
		if back != m {
			t.Fatalf("round trip %d -> %q -> %d", m, s, back)
		}
		if ToTimeString(back) != s {
			t.Fatalf("round trip %q -> %d -> %q", s, back, ToTimeString(back))
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	got, err := WeekdayOf("2026-02-16")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got != "Monday" {
		t.Errorf("ожидался Monday, получено %s", got)
	}

	if _, err := WeekdayOf("2026-2-16"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ожидалась ErrInvalidDate, получено %v", err)
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Saturday")
	if err != nil || day != time.Saturday {
		t.Errorf("ParseWeekday(Saturday) = %v, %v", day, err)
	}

	if _, err := ParseWeekday("monday"); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("ожидалась ErrInvalidWeekday для monday, получено %v", err)
	}

	if WeekdayName(time.Wednesday) != "Wednesday" {
		t.Errorf("WeekdayName(Wednesday) = %s", WeekdayName(time.Wednesday))
	}
}
