package errors

import (
	"context"
	"errors"
	"sync"

	"github.com/stagecall/stagecall/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// Formatter renders a user-facing message for one error kind. Formatters may
// perform cross-concept lookups (resolving ids to readable labels) before
// templating; they run at the transport boundary, at most once per raised
// error.
type Formatter func(ctx context.Context, e *Error) (string, error)

// Registry maps error codes to message formatters. Registration happens once
// per code at process start; rendering is a plain lookup.
type Registry struct {
	mu         sync.RWMutex
	formatters map[Code]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: map[Code]Formatter{}}
}

// Register associates a formatter with an error code for the process lifetime.
// Registering the same code twice replaces the previous formatter.
func (r *Registry) Register(code Code, f Formatter) {
	if r == nil || f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[code] = f
}

// Render produces the user-facing message and HTTP status for err. Domain
// errors with a registered formatter use it; formatter failures and
// unregistered codes fall back to the locale catalog template rendered with
// the error's metadata. Errors that are not domain errors render a generic
// message.
func (r *Registry) Render(ctx context.Context, locale string, err error) (string, int) {
	if err == nil {
		return "", 0
	}
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return "an unexpected error occurred", HTTPStatus(CodeUnknown)
	}

	status := HTTPStatus(appErr.Code)
	if r != nil {
		r.mu.RLock()
		f, ok := r.formatters[appErr.Code]
		r.mu.RUnlock()
		if ok {
			if msg, ferr := f(ctx, appErr); ferr == nil {
				return msg, status
			}
		}
	}

	catalog := i18n.GetCatalog(locale)
	if catalog.Has(string(appErr.Code)) {
		return catalog.Format(string(appErr.Code), appErr.Metadata), status
	}
	return appErr.Message, status
}
