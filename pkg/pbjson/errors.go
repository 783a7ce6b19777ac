package pbjson

import (
	"errors"
	"fmt"

	"github.com/deepankarm/pbjson/pkg/pbjson/internal/fsm"
	"github.com/deepankarm/pbjson/pkg/pbjson/internal/perror"
)

// Error kinds, re-exported from perror so callers only need to import
// this package. See spec §7 for the full taxonomy.
type (
	Error  = perror.Error
	Errors = perror.Errors
	Kind   = perror.Kind
)

const (
	KindLexical       = perror.KindLexical
	KindUnknownField  = perror.KindUnknownField
	KindTypeMismatch  = perror.KindTypeMismatch
	KindNumericParse  = perror.KindNumericParse
	KindEnumUnknown   = perror.KindEnumUnknown
	KindBase64        = perror.KindBase64
	KindDuration      = perror.KindDuration
	KindTimestamp     = perror.KindTimestamp
	KindDepthExceeded = perror.KindDepthExceeded
	KindInternal      = perror.KindInternal
	KindOutOfMemory   = perror.KindOutOfMemory
)

// newError builds a bare perror.Error of the given kind, with no path
// (withPath fills that in once the error reaches fail()).
func newError(kind Kind, format string, args ...any) *perror.Error {
	return perror.New(kind, format, args...)
}

func (d *Driver) typeMismatch(f Field, format string, args ...any) *perror.Error {
	msg := fmt.Sprintf(format, args...)
	return newError(KindTypeMismatch, "field %q: %s", f.Name(), msg)
}

func (d *Driver) lexError(format string, args ...any) *perror.Error {
	return newError(KindLexical, format, args...)
}

func (d *Driver) internalError(format string, args ...any) *perror.Error {
	return newError(KindInternal, format, args...)
}

func (d *Driver) unknownFieldError(name string) *perror.Error {
	return newError(KindUnknownField, "unknown field %q", name)
}

func newDepthError(err error) *perror.Error {
	var de *fsm.ErrDepthExceeded
	if errors.As(err, &de) {
		return perror.New(perror.KindDepthExceeded, "%s", de.Error())
	}
	return perror.New(perror.KindInternal, "%s", err.Error())
}

// withPath prepends the current frame-stack path to e's Path, so the
// error reads as the full location (message.field.message.field...)
// rather than just the innermost segment that raised it.
func (d *Driver) withPath(e *perror.Error) *perror.Error {
	path := append(d.frames.path(), e.Path...)
	return &perror.Error{Path: path, Message: e.Message, Kind: e.Kind}
}
