// Package services contains server-side business logic: registration and
// login, the post, comment and user resources, ownership checks and the
// cascading deletes that keep them consistent.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/dmitrijs2005/blogkeeper/internal/server/services")

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// endSpan records err, if any, and ends span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// lookupError translates a repository lookup failure into a typed error.
func lookupError(err error, notFound string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.WrapError(common.KindNotFound, notFound, err)
	case errors.Is(err, common.ErrMalformedID):
		return common.WrapError(common.KindInternal, "Malformed id", err)
	default:
		return internal(err)
	}
}

func internal(err error) error {
	return common.WrapError(common.KindInternal, "Server error", err)
}

func validation(message string) error {
	return common.NewError(common.KindValidation, message)
}
