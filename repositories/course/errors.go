// Package courseRepository holds the queries behind course management.
// Every lookup of an owned row takes the requesting principal and returns
// ErrNotFound both for missing rows and for rows owned by someone else.
package courseRepository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// notFound maps gorm's miss onto ErrNotFound and wraps everything else
func notFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, what)
	}
	return errors.Wrapf(err, "load %s", what)
}
