package timer

import (
	"context"
	"errors"
	"fmt"
)

const CompletionTitle = "Time's up!"

func CompletionBody(m Mode) string {
	return fmt.Sprintf("Your %s timer has ended.", m)
}

type Permission uint8

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// NotificationChannel is where completion notices go, e.g. a desktop or chat notifier.
type NotificationChannel interface {
	Permission() Permission
	RequestPermission(context.Context) (Permission, error)
	Notify(ctx context.Context, title, body string) error
}

// Discard grants every request and drops every notification.
var Discard NotificationChannel = discard{}

type discard struct{}

func (discard) Permission() Permission { return PermissionGranted }

func (discard) RequestPermission(context.Context) (Permission, error) {
	return PermissionGranted, nil
}

func (discard) Notify(context.Context, string, string) error { return nil }

// Multi delivers to every channel independently. Its own permission is
// granted when any member is granted.
func Multi(channels ...NotificationChannel) NotificationChannel {
	return multi(channels)
}

type multi []NotificationChannel

func (m multi) Permission() Permission {
	p := PermissionDenied
	for _, ch := range m {
		switch ch.Permission() {
		case PermissionGranted:
			return PermissionGranted
		case PermissionDefault:
			p = PermissionDefault
		}
	}
	return p
}

func (m multi) RequestPermission(ctx context.Context) (Permission, error) {
	p := PermissionDenied
	var errs []error
	for _, ch := range m {
		if ch.Permission() != PermissionDefault {
			if ch.Permission() == PermissionGranted {
				p = PermissionGranted
			}
			continue
		}
		got, err := ch.RequestPermission(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if got == PermissionGranted {
			p = PermissionGranted
		}
	}
	return p, errors.Join(errs...)
}

func (m multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, ch := range m {
		if ch.Permission() != PermissionGranted {
			continue
		}
		if err := ch.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// deliver sends the completion notice for m at most once. It reports whether
// Notify was called.
func deliver(ctx context.Context, ch NotificationChannel, m Mode) (bool, error) {
	switch ch.Permission() {
	case PermissionGranted:
	case PermissionDenied:
		return false, nil
	default:
		p, err := ch.RequestPermission(ctx)
		if err != nil {
			return false, fmt.Errorf("request notification permission: %w", err)
		}
		if p != PermissionGranted {
			return false, nil
		}
	}
	return true, ch.Notify(ctx, CompletionTitle, CompletionBody(m))
}
