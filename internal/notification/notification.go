package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
)

// Notifier is the toast side channel. Every cart mutation surfaces exactly one
// message through it, success or failure.
type Notifier interface {
	Success(c context.Context, message string)
	Error(c context.Context, message string)
}

type Toaster struct{}

func NewToaster() Toaster { return Toaster{} }

func (Toaster) Success(c context.Context, message string) {
	zerolog.Ctx(c).Info().Str(log.KeyTag, "Toaster").Msg(message)
}

func (Toaster) Error(c context.Context, message string) {
	zerolog.Ctx(c).Error().Str(log.KeyTag, "Toaster").Msg(message)
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, message)
}

func (r *Recorder) Error(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, message)
}

func (r *Recorder) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]string, 0, len(r.Successes)+len(r.Errors))
	all = append(all, r.Successes...)
	all = append(all, r.Errors...)
	return all
}
