package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-01-04 is a Saturday.
func madridTime(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	return time.Date(2025, time.January, day, hour, minute, 0, 0, loc)
}

func TestNextActivation(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"saturday before the window opens",
			madridTime(t, 4, 13, 0),
			madridTime(t, 4, 14, 0),
		},
		{
			"saturday exactly on a tick moves to the next one",
			madridTime(t, 4, 14, 0),
			madridTime(t, 4, 14, 30),
		},
		{
			"saturday mid window",
			madridTime(t, 4, 22, 45),
			madridTime(t, 4, 23, 0),
		},
		{
			"saturday after the window closes rolls to sunday",
			madridTime(t, 4, 23, 10),
			madridTime(t, 5, 11, 0),
		},
		{
			"sunday last tick rolls to monday morning",
			madridTime(t, 5, 23, 30),
			madridTime(t, 6, 10, 0),
		},
		{
			"weekday after the daily trigger rolls to the next day",
			madridTime(t, 6, 11, 0),
			madridTime(t, 7, 10, 0),
		},
		{
			"weekday before the daily trigger",
			madridTime(t, 8, 9, 59),
			madridTime(t, 8, 10, 0),
		},
		{
			"friday after the daily trigger rolls to saturday window",
			madridTime(t, 3, 10, 0),
			madridTime(t, 4, 14, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextActivation(tt.now))
		})
	}
}

func TestNextActivation_AlwaysStrictlyAfterInput(t *testing.T) {
	now := madridTime(t, 4, 0, 0)
	for i := 0; i < 200; i++ {
		next := NextActivation(now)
		assert.True(t, next.After(now), "activation %v not after %v", next, now)
		now = next
	}
}
