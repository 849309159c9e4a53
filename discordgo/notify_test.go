package discordgo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/worklog-go/timer"
)

type fakeAPI struct {
	// createDMGate, when set, holds CreateDM until it is closed
	createDMGate chan struct{}
	createDMErr  error
	sendErr     error
	dmCalls     int
	sent        map[string][]*discordgo.MessageSend
}

func (a *fakeAPI) CreateDM(userID string) (string, error) {
	if a.createDMGate != nil {
		<-a.createDMGate
	}
	a.dmCalls++
	if a.createDMErr != nil {
		return "", a.createDMErr
	}
	return "dm-" + userID, nil
}

func (a *fakeAPI) Send(channelID string, msg *discordgo.MessageSend) error {
	if a.sendErr != nil {
		return a.sendErr
	}
	if a.sent == nil {
		a.sent = make(map[string][]*discordgo.MessageSend)
	}
	a.sent[channelID] = append(a.sent[channelID], msg)
	return nil
}

func forbidden() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeCannotSendMessagesToThisUser},
	}
}

func TestDMNotifier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("granted after DM channel opens", func(t *testing.T) {
		t.Parallel()

		a := &fakeAPI{}
		n := newDMNotifier(a, "u1", logger)
		assert.Equal(t, timer.PermissionDefault, n.Permission())

		p, err := n.RequestPermission(ctx)
		require.NoError(t, err)
		assert.Equal(t, timer.PermissionGranted, p)

		// settled permission is not requested again
		_, _ = n.RequestPermission(ctx)
		assert.Equal(t, 1, a.dmCalls)

		require.NoError(t, n.Notify(ctx, timer.CompletionTitle, timer.CompletionBody(timer.Focus)))
		assert.Len(t, a.sent["dm-u1"], 1)
	})

	t.Run("permission readable while DM channel opens", func(t *testing.T) {
		t.Parallel()

		a := &fakeAPI{createDMGate: make(chan struct{})}
		n := newDMNotifier(a, "u1", logger)

		done := make(chan timer.Permission)
		go func() {
			p, _ := n.RequestPermission(ctx)
			done <- p
		}()

		read := make(chan timer.Permission)
		go func() {
			read <- n.Permission()
		}()
		select {
		case p := <-read:
			assert.Equal(t, timer.PermissionDefault, p)
		case <-time.After(time.Second):
			t.Fatal("Permission blocked behind RequestPermission")
		}

		close(a.createDMGate)
		assert.Equal(t, timer.PermissionGranted, <-done)
		assert.Equal(t, timer.PermissionGranted, n.Permission())
	})

	t.Run("denied when user blocks DMs", func(t *testing.T) {
		t.Parallel()

		n := newDMNotifier(&fakeAPI{createDMErr: forbidden()}, "u1", logger)
		p, err := n.RequestPermission(ctx)
		require.NoError(t, err)
		assert.Equal(t, timer.PermissionDenied, p)
	})

	t.Run("transient error leaves permission undecided", func(t *testing.T) {
		t.Parallel()

		n := newDMNotifier(&fakeAPI{createDMErr: errors.New("timeout")}, "u1", logger)
		_, err := n.RequestPermission(ctx)
		assert.Error(t, err)
		assert.Equal(t, timer.PermissionDefault, n.Permission())
	})

	t.Run("no user is denied", func(t *testing.T) {
		t.Parallel()

		a := &fakeAPI{}
		n := newDMNotifier(a, "", logger)
		assert.Equal(t, timer.PermissionDenied, n.Permission())
		require.NoError(t, n.Notify(ctx, "t", "b"))
		assert.Empty(t, a.sent)
	})

	t.Run("forbidden send revokes permission", func(t *testing.T) {
		t.Parallel()

		a := &fakeAPI{}
		n := newDMNotifier(a, "u1", logger)
		_, err := n.RequestPermission(ctx)
		require.NoError(t, err)

		a.sendErr = forbidden()
		assert.Error(t, n.Notify(ctx, "t", "b"))
		assert.Equal(t, timer.PermissionDenied, n.Permission())
	})
}

func TestChannelNotifier(t *testing.T) {
	t.Parallel()

	a := &fakeAPI{}
	n := &ChannelNotifier{api: a, channelID: "c1", mention: "u1"}
	assert.Equal(t, timer.PermissionGranted, n.Permission())
	require.NoError(t, n.Notify(context.Background(), "Time's up!", "Your Focus timer has ended."))

	require.Len(t, a.sent["c1"], 1)
	msg := a.sent["c1"][0]
	require.Len(t, msg.Components, 1)
	container, ok := msg.Components[0].(discordgo.Container)
	require.True(t, ok)
	text, ok := container.Components[0].(discordgo.TextDisplay)
	require.True(t, ok)
	assert.Equal(t, "<@u1>\n### Time's up!\nYour Focus timer has ended.", text.Content)
}
