package utils

import "time"

// The app's home timezone. Day buckets (meal entries, manual logs,
// daily summaries) are all keyed on midnight in this zone.
var ServiceZone = time.FixedZone("ICT", 7*3600)

// ServiceDate returns today's date truncated to midnight in ServiceZone.
func ServiceDate() time.Time {
	return DayOf(time.Now())
}

func DayOf(t time.Time) time.Time {
	t = t.In(ServiceZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ServiceZone)
}

// ParseDay parses a YYYY-MM-DD string into a ServiceZone day bucket.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, ServiceZone)
}

func FormatDay(t time.Time) string {
	return t.In(ServiceZone).Format("2006-01-02")
}

func CalculateAge(birthday time.Time) int {
	now := time.Now().In(ServiceZone)
	age := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		age--
	}
	return age
}
