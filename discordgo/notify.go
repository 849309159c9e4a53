// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go/timer"
)

type api interface {
	CreateDM(userID string) (channelID string, err error)
	Send(channelID string, msg *discordgo.MessageSend) error
}

type sessionAPI struct {
	cl *discordgo.Session
}

func (a sessionAPI) CreateDM(userID string) (string, error) {
	ch, err := a.cl.UserChannelCreate(userID)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (a sessionAPI) Send(channelID string, msg *discordgo.MessageSend) error {
	_, err := a.cl.ChannelMessageSendComplex(channelID, msg)
	return err
}

// NotificationMessage renders a completion notice as a components message.
func NotificationMessage(title, body string, mentionUserID string) *discordgo.MessageSend {
	content := fmt.Sprintf("### %s\n%s", title, body)
	if mentionUserID != "" {
		content = fmt.Sprintf("<@%s>\n%s", mentionUserID, content)
	}
	return &discordgo.MessageSend{
		Flags: discordgo.MessageFlagsIsComponentsV2,
		Components: []discordgo.MessageComponent{
			discordgo.Container{
				AccentColor: ColorOrange.ToInt(),
				Components: []discordgo.MessageComponent{
					TextDisplay(content),
				},
			},
		},
	}
}

// DMNotifier delivers timer notifications as direct messages to one user.
// Permission starts out undecided and is settled by opening the DM channel:
// users who block DMs from the bot end up denied.
type DMNotifier struct {
	api    api
	userID string
	l      *log.Logger

	mu        sync.Mutex
	perm      timer.Permission
	channelID string
}

func NewDMNotifier(cl *discordgo.Session, userID string, logger *log.Logger) *DMNotifier {
	return newDMNotifier(sessionAPI{cl: cl}, userID, logger)
}

func newDMNotifier(a api, userID string, logger *log.Logger) *DMNotifier {
	n := &DMNotifier{
		api:    a,
		userID: userID,
		l:      logger,
	}
	if userID == "" {
		n.perm = timer.PermissionDenied
	}
	return n
}

func (n *DMNotifier) Permission() timer.Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.perm
}

func (n *DMNotifier) RequestPermission(ctx context.Context) (timer.Permission, error) {
	n.mu.Lock()
	perm := n.perm
	n.mu.Unlock()
	if perm != timer.PermissionDefault {
		return perm, nil
	}
	if err := ctx.Err(); err != nil {
		return perm, err
	}

	// the lock is not held across the REST call
	cid, err := n.api.CreateDM(n.userID)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.perm != timer.PermissionDefault {
		// settled by a concurrent request
		return n.perm, nil
	}
	if err != nil {
		if isForbidden(err) {
			n.l.Debug("direct messages denied", "userID", n.userID, "err", err)
			n.perm = timer.PermissionDenied
			return n.perm, nil
		}
		return n.perm, fmt.Errorf("failed to open DM channel: %w", err)
	}
	n.channelID = cid
	n.perm = timer.PermissionGranted
	return n.perm, nil
}

func (n *DMNotifier) Notify(ctx context.Context, title, body string) error {
	n.mu.Lock()
	cid, perm := n.channelID, n.perm
	n.mu.Unlock()
	if perm != timer.PermissionGranted {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := n.api.Send(cid, NotificationMessage(title, body, ""))
	if isForbidden(err) {
		n.mu.Lock()
		n.perm = timer.PermissionDenied
		n.mu.Unlock()
	}
	return err
}

// ChannelNotifier posts timer notifications to a text channel, optionally
// mentioning a user.
type ChannelNotifier struct {
	api       api
	channelID string
	mention   string
}

func NewChannelNotifier(cl *discordgo.Session, channelID, mentionUserID string) *ChannelNotifier {
	return &ChannelNotifier{
		api:       sessionAPI{cl: cl},
		channelID: channelID,
		mention:   mentionUserID,
	}
}

func (n *ChannelNotifier) Permission() timer.Permission {
	return timer.PermissionGranted
}

func (n *ChannelNotifier) RequestPermission(context.Context) (timer.Permission, error) {
	return timer.PermissionGranted, nil
}

func (n *ChannelNotifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.api.Send(n.channelID, NotificationMessage(title, body, n.mention))
}

func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == 403
}

var (
	_ timer.NotificationChannel = (*DMNotifier)(nil)
	_ timer.NotificationChannel = (*ChannelNotifier)(nil)
)
