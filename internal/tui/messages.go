package tui

import (
	"sync"
	"time"

	"secretary-cli/internal/dashboard"
)

type clockTickMsg time.Time

type loadDoneMsg struct{ err error }

// actionDoneMsg reports a finished controller action. closeModal is set when a
// successful action should dismiss the open modal.
type actionDoneMsg struct {
	err        error
	closeModal bool
}

type cacheChangedMsg struct{ topic dashboard.Topic }

type toastExpiredMsg struct{ seq int }

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	kind  toastKind
	title string
	text  string
}

// toastInbox collects toasts raised by the controller while a command runs.
// The model drains it when the command's result message arrives.
type toastInbox struct {
	mu     sync.Mutex
	queued []toast
}

func (b *toastInbox) Success(title, message string) { b.push(toast{toastSuccess, title, message}) }

func (b *toastInbox) Error(title, message string) { b.push(toast{toastError, title, message}) }

func (b *toastInbox) push(t toast) {
	b.mu.Lock()
	b.queued = append(b.queued, t)
	b.mu.Unlock()
}

func (b *toastInbox) drain() []toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.queued
	b.queued = nil
	return out
}
