package scheduler

import "time"

// The weekly update schedule tracks match days: Saturday and Sunday carry
// dense 30-minute windows while fixtures are being played, weekdays only
// get one morning check.
//
//	Saturday:  every 30 minutes, 14:00-23:00
//	Sunday:    every 30 minutes, 11:00-23:30
//	Mon-Fri:   daily at 10:00
type window struct {
	weekday   time.Weekday
	startHour int
	startMin  int
	endHour   int
	endMin    int
	stepMin   int
}

var weeklySchedule = []window{
	{time.Saturday, 14, 0, 23, 0, 30},
	{time.Sunday, 11, 0, 23, 30, 30},
	{time.Monday, 10, 0, 10, 0, 30},
	{time.Tuesday, 10, 0, 10, 0, 30},
	{time.Wednesday, 10, 0, 10, 0, 30},
	{time.Thursday, 10, 0, 10, 0, 30},
	{time.Friday, 10, 0, 10, 0, 30},
}

// NextActivation returns the first scheduled trigger strictly after t,
// evaluated in t's location.
func NextActivation(t time.Time) time.Time {
	for dayOffset := 0; dayOffset <= 7; dayOffset++ {
		day := t.AddDate(0, 0, dayOffset)
		for _, w := range weeklySchedule {
			if day.Weekday() != w.weekday {
				continue
			}
			start := time.Date(day.Year(), day.Month(), day.Day(), w.startHour, w.startMin, 0, 0, t.Location())
			end := time.Date(day.Year(), day.Month(), day.Day(), w.endHour, w.endMin, 0, 0, t.Location())
			for tick := start; !tick.After(end); tick = tick.Add(time.Duration(w.stepMin) * time.Minute) {
				if tick.After(t) {
					return tick
				}
			}
		}
	}
	// Unreachable: every weekday has at least one activation.
	return t.Add(24 * time.Hour)
}
