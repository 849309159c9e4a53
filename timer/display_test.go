package timer

import (
	"strings"
	"testing"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{300, "05:00"},
		{61, "01:01"},
		{9, "00:09"},
		{0, "00:00"},
		{-5, "00:00"},
		{6000, "100:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSnapshot_Display(t *testing.T) {
	snap := Snapshot{
		Config: DefaultConfig(),
		State:  State{Mode: ShortBreak, Remaining: 125, Running: true},
	}
	label, clock, running := snap.Display()
	if label != "Short Break" || clock != "02:05" || !running {
		t.Errorf("Display() = (%q, %q, %v)", label, clock, running)
	}
	if got := snap.Minutes(LongBreak); got != 15 {
		t.Errorf("Minutes(LongBreak) = %d, want 15", got)
	}
}

func TestSnapshot_TimerBar(t *testing.T) {
	t.Parallel()

	const total = 30 * 60

	testCases := []struct {
		name           string
		remaining      int
		expectedFilled int
		expectedEmpty  int
	}{
		{"not started", total, 20, 0},
		{"half elapsed", total / 2, 10, 10},
		{"quarter elapsed", total * 3 / 4, 15, 5},
		{"completed", 0, 0, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg[Focus] = total
			snap := Snapshot{Config: cfg, State: State{Mode: Focus, Remaining: tc.remaining}}

			result := snap.TimerBar()
			expected := strings.Repeat(timerBarFilledChar, tc.expectedFilled) + strings.Repeat(timerBarEmptyChar, tc.expectedEmpty)

			if result != expected {
				t.Errorf("TimerBar() = %q, want %q", result, expected)
			}
		})
	}
}
