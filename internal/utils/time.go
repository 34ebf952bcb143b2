package util

import (
	"fmt"
	"time"
)

// NowFunc is the clock used by services; tests replace it.
var NowFunc = func() time.Time { return time.Now().UTC() }

// MinutesBefore returns t moved back by the given number of minutes.
func MinutesBefore(t time.Time, minutes int) time.Time {
	return t.Add(-time.Duration(minutes) * time.Minute)
}

// FormatDuration renders d as HH:MM:SS, the way result pages show it.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
