package session

import "errors"

// ErrNoToken is returned by Get when no token is stored.
var ErrNoToken = errors.New("no session token stored")

// Store holds the single session token of this installation. Exactly one
// token is active at a time; Set replaces any previous value.
//
// All three operations are fallible. Callers are expected to degrade on
// failure rather than abort: a failed Get means "no token", a failed Clear
// means "already cleared". A failed Set leaves the user logged out on the
// next launch, which is also survivable.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}
