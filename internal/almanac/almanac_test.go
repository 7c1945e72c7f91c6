package almanac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLunarPhase(t *testing.T) {
	epoch := time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "reference new moon", t: epoch, want: "New Moon"},
		{name: "half a cycle later is full", t: epoch.Add(time.Duration(float64(24*time.Hour) * SynodicMonth / 2)), want: "Full Moon"},
		{name: "quarter cycle later is first quarter", t: epoch.Add(time.Duration(float64(24*time.Hour) * SynodicMonth / 4)), want: "First Quarter"},
		{name: "before the epoch wraps around", t: epoch.AddDate(0, 0, -1), want: "New Moon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LunarPhase(tt.t))
		})
	}

	t.Run("periodic with the synodic month", func(t *testing.T) {
		cycle := time.Duration(float64(24*time.Hour) * SynodicMonth)
		for i := 0; i < 12; i++ {
			moment := epoch.Add(time.Duration(i) * 100 * time.Hour)
			assert.Equal(t, LunarPhase(moment), LunarPhase(moment.Add(cycle)), "offset %d", i)
		}
	})
}

func TestSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Winter"},
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Autumn"},
		{time.November, "Autumn"},
		{time.December, "Winter"},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Season(time.Date(2025, tt.month, 10, 0, 0, 0, 0, time.UTC)))
		})
	}
}

func TestWheelHoliday(t *testing.T) {
	holiday, ok := WheelHoliday(time.Date(2025, time.October, 31, 23, 0, 0, 0, time.Local))
	require.True(t, ok)
	assert.Equal(t, "Samhain", holiday)

	holiday, ok = WheelHoliday(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local))
	require.True(t, ok)
	assert.Equal(t, "Imbolc", holiday)

	_, ok = WheelHoliday(time.Date(2025, time.April, 15, 0, 0, 0, 0, time.Local))
	assert.False(t, ok)
}

func TestUpcomingHolidays(t *testing.T) {
	t.Run("spans the year boundary", func(t *testing.T) {
		got := UpcomingHolidays(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), 3)
		require.Len(t, got, 3)
		assert.Equal(t, "Yule", got[0].Name)
		assert.Equal(t, 2025, got[0].Date.Year())
		assert.Equal(t, "Imbolc", got[1].Name)
		assert.Equal(t, 2026, got[1].Date.Year())
		assert.Equal(t, "Ostara", got[2].Name)
	})

	t.Run("excludes the current day", func(t *testing.T) {
		got := UpcomingHolidays(time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC), 1)
		require.Len(t, got, 1)
		assert.Equal(t, "Imbolc", got[0].Name)
	})

	t.Run("zero count yields nothing", func(t *testing.T) {
		assert.Empty(t, UpcomingHolidays(time.Now(), 0))
	})
}

func TestSnapshot(t *testing.T) {
	info := Snapshot(time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "Summer", info.Season)
	assert.Equal(t, "Litha", info.Holiday)
	assert.NotEmpty(t, info.LunarPhase)
}
