// Package apperr defines the domain error kinds shared by use cases and the
// mapping from those kinds to gRPC status codes.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/pkg/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindInsufficientStock
	KindIllegalTransition
	KindFailedPrecondition
	KindBusy
)

type Error struct {
	Kind      Kind
	MessageID string
	Data      map[string]interface{}
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(entity string) *Error {
	return &Error{
		Kind:      KindNotFound,
		MessageID: "not_found",
		Data:      map[string]interface{}{"Entity": entity},
		Message:   entity + " not found",
	}
}

func Invalid(format string, args ...interface{}) *Error {
	detail := fmt.Sprintf(format, args...)
	return &Error{
		Kind:      KindInvalid,
		MessageID: "invalid_input",
		Data:      map[string]interface{}{"Detail": detail},
		Message:   "invalid input: " + detail,
	}
}

func Conflict(entity, detail string) *Error {
	return &Error{
		Kind:      KindConflict,
		MessageID: "already_exists",
		Data:      map[string]interface{}{"Entity": entity, "Detail": detail},
		Message:   fmt.Sprintf("%s already exists: %s", entity, detail),
	}
}

func InsufficientStock(officeID, productID string) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		MessageID: "insufficient_stock",
		Data:      map[string]interface{}{"OfficeID": officeID, "ProductID": productID},
		Message:   fmt.Sprintf("insufficient stock for product %s at office %s", productID, officeID),
	}
}

func IllegalTransition(entity string, from, to string) *Error {
	return &Error{
		Kind:      KindIllegalTransition,
		MessageID: "illegal_transition",
		Data:      map[string]interface{}{"Entity": entity, "From": from, "To": to},
		Message:   fmt.Sprintf("%s cannot move from %s to %s", entity, from, to),
	}
}

func FailedPrecondition(format string, args ...interface{}) *Error {
	detail := fmt.Sprintf(format, args...)
	return &Error{
		Kind:      KindFailedPrecondition,
		MessageID: "failed_precondition",
		Data:      map[string]interface{}{"Detail": detail},
		Message:   "operation not allowed: " + detail,
	}
}

func Busy(err error) *Error {
	return &Error{
		Kind:      KindBusy,
		MessageID: "system_busy",
		Message:   "system busy, please try again later",
		Err:       err,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var codeByKind = map[Kind]codes.Code{
	KindInternal:           codes.Internal,
	KindNotFound:           codes.NotFound,
	KindInvalid:            codes.InvalidArgument,
	KindConflict:           codes.AlreadyExists,
	KindInsufficientStock:  codes.FailedPrecondition,
	KindIllegalTransition:  codes.FailedPrecondition,
	KindFailedPrecondition: codes.FailedPrecondition,
	KindBusy:               codes.Unavailable,
}

// ToStatus converts err into a gRPC status error, localizing the message for
// the caller's language. Errors without a kind become codes.Internal and
// never leak their text.
func ToStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		msg := i18n.Translate(auth.GetLanguage(ctx), "internal_error", nil)
		if msg == "" {
			msg = "internal error"
		}
		return status.Error(codes.Internal, msg)
	}

	msg := i18n.Translate(auth.GetLanguage(ctx), e.MessageID, e.Data)
	if msg == "" {
		msg = e.Message
	}
	return status.Error(codeByKind[e.Kind], msg)
}
