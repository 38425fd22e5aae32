package utils

import (
	"testing"
	"time"
)

func TestDayOfTruncates(t *testing.T) {
	moment := time.Date(2026, 3, 10, 15, 42, 7, 0, ServiceZone)
	day := DayOf(moment)

	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("day = %v, want midnight", day)
	}
	if day.Year() != 2026 || day.Month() != time.March || day.Day() != 10 {
		t.Errorf("day = %v, want 2026-03-10", day)
	}
}

func TestDayOfCrossesZones(t *testing.T) {
	// 20:00 UTC is already the next day in the service zone.
	utc := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	day := DayOf(utc)
	if FormatDay(day) != "2026-03-11" {
		t.Errorf("day = %v, want 2026-03-11", day)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	day, err := ParseDay("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if FormatDay(day) != "2026-03-10" {
		t.Errorf("round trip = %q", FormatDay(day))
	}
	if !day.Equal(DayOf(day)) {
		t.Errorf("parsed day %v is not a day bucket", day)
	}

	if _, err := ParseDay("10-03-2026"); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestCalculateAge(t *testing.T) {
	now := time.Now().In(ServiceZone)

	birthdayPassed := now.AddDate(-30, 0, -10)
	if age := CalculateAge(birthdayPassed); age != 30 {
		t.Errorf("age = %d, want 30", age)
	}

	birthdayUpcoming := now.AddDate(-30, 0, 10)
	if age := CalculateAge(birthdayUpcoming); age != 29 {
		t.Errorf("age = %d, want 29 before the birthday", age)
	}
}
