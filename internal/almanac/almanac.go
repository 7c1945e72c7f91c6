// Package almanac computes lunar, seasonal, and wheel-of-the-year context for
// a date. All functions are pure.
package almanac

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of a lunar cycle in days.
const SynodicMonth = 29.530588

// referenceNewMoon is a known new moon used as the phase epoch.
var referenceNewMoon = time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC)

// Info is the almanac snapshot handed to the interpretation prompt.
type Info struct {
	LunarPhase string
	Season     string
	Holiday    string
}

// Holiday is one of the eight Sabbats with its observed date.
type Holiday struct {
	Name string
	Date time.Time
}

// sabbats lists the wheel-of-the-year holidays by fixed month and day.
var sabbats = []struct {
	month time.Month
	day   int
	name  string
}{
	{time.February, 1, "Imbolc"},
	{time.March, 20, "Ostara"},
	{time.May, 1, "Beltane"},
	{time.June, 21, "Litha"},
	{time.August, 1, "Lughnasadh"},
	{time.September, 22, "Mabon"},
	{time.October, 31, "Samhain"},
	{time.December, 21, "Yule"},
}

// LunarPhase returns the named phase bucket for t. The function is periodic
// with the synodic month.
func LunarPhase(t time.Time) string {
	days := t.Sub(referenceNewMoon).Hours() / 24
	phase := math.Mod(math.Mod(days, SynodicMonth)+SynodicMonth, SynodicMonth)

	switch {
	case phase < 1.845:
		return "New Moon"
	case phase < 5.536:
		return "Waxing Crescent"
	case phase < 9.228:
		return "First Quarter"
	case phase < 12.919:
		return "Waxing Gibbous"
	case phase < 16.611:
		return "Full Moon"
	case phase < 20.302:
		return "Waning Gibbous"
	case phase < 23.994:
		return "Last Quarter"
	case phase < 27.684:
		return "Waning Crescent"
	}
	return "New Moon"
}

// Season returns the Northern-hemisphere season for t by calendar month.
func Season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	case time.September, time.October, time.November:
		return "Autumn"
	}
	return "Winter"
}

// WheelHoliday returns the Sabbat observed on t, if any.
func WheelHoliday(t time.Time) (string, bool) {
	for _, s := range sabbats {
		if t.Month() == s.month && t.Day() == s.day {
			return s.name, true
		}
	}
	return "", false
}

// UpcomingHolidays returns the next n Sabbats strictly after t's date,
// continuing into the following year when needed.
func UpcomingHolidays(t time.Time, n int) []Holiday {
	if n < 1 {
		return nil
	}

	var upcoming []Holiday
	for year := t.Year(); len(upcoming) < n; year++ {
		for _, s := range sabbats {
			date := time.Date(year, s.month, s.day, 0, 0, 0, 0, t.Location())
			if !date.After(t) {
				continue
			}
			upcoming = append(upcoming, Holiday{Name: s.name, Date: date})
			if len(upcoming) == n {
				break
			}
		}
	}
	return upcoming
}

// Snapshot bundles the almanac values for t.
func Snapshot(t time.Time) Info {
	holiday, _ := WheelHoliday(t)
	return Info{
		LunarPhase: LunarPhase(t),
		Season:     Season(t),
		Holiday:    holiday,
	}
}
