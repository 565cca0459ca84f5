// Package logger builds the zerolog logger shared by the service binaries.
package logger

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// ensureStack attaches a pkg/errors stack to err unless it already carries
// one, so std errors still render a trace at the log site.
func ensureStack(err error) error {
	type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}

// New returns a JSON logger tagged with the service name. Error events that
// call .Stack() render a full stack trace, whether or not the error was
// created with github.com/pkg/errors.
func New(serviceName string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		return zpkgerrors.MarshalStack(ensureStack(err))
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return ensureStack(err)
	}

	return zerolog.New(os.Stdout).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
