package source

import (
	"context"
	"errors"
	"fmt"

	"jobscout-engine/internal/domain"
)

// Query is one fetch against one site for one search term.
type Query struct {
	Term     string
	Site     string
	Limit    int
	HoursOld int
	Country  string
	Location string
}

// Source fetches postings for a single (term, site) pair. Ordinary fetch
// failures (network, rate limit, bad upstream status) come back as *Error
// values; an empty result is a success.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.Posting, error)
}

// Error is a recoverable per-site fetch failure. It never aborts the other
// sites of a task.
type Error struct {
	Site string
	Term string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %q: %s", e.Site, e.Term, e.Msg)
}

// AsError unwraps err into a *Error if it is one.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
