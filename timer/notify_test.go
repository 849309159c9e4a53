package timer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulti(t *testing.T) {
	granted := &fakeNotifier{permission: PermissionGranted}
	denied := &fakeNotifier{permission: PermissionDenied}
	undecided := &fakeNotifier{permission: PermissionDefault, onRequest: PermissionGranted}

	ch := Multi(granted, denied, undecided)
	assert.Equal(t, PermissionGranted, ch.Permission())

	sent, err := deliver(context.Background(), ch, LongBreak)
	assert.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, 1, granted.count())
	assert.Equal(t, 0, denied.count())
	assert.Equal(t, 0, undecided.count(), "undecided members are only asked when nobody is granted")

	ch = Multi(denied, undecided)
	assert.Equal(t, PermissionDefault, ch.Permission())
	sent, err = deliver(context.Background(), ch, Focus)
	assert.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, 1, undecided.requests)
	assert.Equal(t, 1, undecided.count())
}

func TestMulti_AllDenied(t *testing.T) {
	ch := Multi(&fakeNotifier{permission: PermissionDenied})
	assert.Equal(t, PermissionDenied, ch.Permission())
	sent, err := deliver(context.Background(), ch, Focus)
	assert.NoError(t, err)
	assert.False(t, sent)
}

func TestMulti_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ch := Multi(
		&fakeNotifier{permission: PermissionGranted, notifyErr: boom},
		&fakeNotifier{permission: PermissionGranted},
	)
	err := ch.Notify(context.Background(), "t", "b")
	assert.ErrorIs(t, err, boom)
}

func TestCompletionBody(t *testing.T) {
	assert.Equal(t, "Your Long Break timer has ended.", CompletionBody(LongBreak))
}
