package repositories

import "errors"

// ErrNotFound is returned by every repository when a lookup matches no row.
// Services translate it into their own typed not-found errors.
var ErrNotFound = errors.New("record not found")
