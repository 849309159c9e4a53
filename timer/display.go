package timer

import (
	"fmt"
	"math"
	"strings"
)

const (
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"
	timerBarLength     = 20
)

// Display returns the mode label, the remaining time as mm:ss and whether the timer is running.
func (s Snapshot) Display() (string, string, bool) {
	return s.State.Mode.String(), FormatClock(s.State.Remaining), s.State.Running
}

// Minutes is the configured duration of m in whole minutes.
func (s Snapshot) Minutes(m Mode) int {
	return s.Config.Minutes(m)
}

func (s Snapshot) Completed() bool {
	return s.State.Remaining == 0
}

// FormatClock renders seconds as zero padded mm:ss. Minutes are not wrapped at the hour.
func FormatClock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// TimerBar renders the remaining share of the active mode's duration.
func (s Snapshot) TimerBar() string {
	total := s.Config[s.State.Mode]
	if s.State.Remaining <= 0 || total <= 0 {
		return strings.Repeat(timerBarEmptyChar, timerBarLength)
	}
	percentage := float64(s.State.Remaining) / float64(total)
	filled := min(int(math.Round(percentage*timerBarLength*10)/10), timerBarLength)
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarLength-filled)
}
