package worklog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimerMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    TimerMinutes
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			yaml: "",
			want: DefaultTimerMinutes(),
		},
		{
			name: "partial override",
			yaml: "focus: 50\nlong_break: 30\n",
			want: TimerMinutes{Focus: 50, ShortBreak: 5, LongBreak: 30},
		},
		{
			name:    "malformed",
			yaml:    "focus: [",
			wantErr: true,
		},
		{
			name:    "wrong type",
			yaml:    "short_break: soon",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimerMinutes([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus: 45\n"), 0o600))

	t.Setenv(DatabaseURLKey, "")
	t.Setenv(UserIDKey, "user-1")
	t.Setenv(LogLevelKey, "debug")
	t.Setenv(TimerConfigKey, path)
	t.Setenv(BotTokenKey, "")

	cfg, err := LoadConfig(false)
	require.NoError(t, err)

	assert.Equal(t, "worklog.db", cfg.DatabaseURL)
	assert.Equal(t, UserID("user-1"), cfg.UserID)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, TimerMinutes{Focus: 45, ShortBreak: 5, LongBreak: 15}, cfg.Timer)
	assert.Equal(t, "Worklog", cfg.BotName)
	assert.NoError(t, cfg.RequireUser())
	assert.Error(t, cfg.RequireBot())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv(LogLevelKey, "loud")
	_, err := LoadConfig(false)
	assert.Error(t, err)

	t.Setenv(LogLevelKey, "")
	t.Setenv(TimerConfigKey, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig(false)
	assert.Error(t, err)
}
