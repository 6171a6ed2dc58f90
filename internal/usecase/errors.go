package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種類。handlerはStatusをそのまま返す。
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindStore        ErrorKind = "store"
	KindInternal     ErrorKind = "internal"
)

// 利用者に見せる文言
const (
	MsgDeliveryDetails      = "Please fill in all delivery details"
	MsgDeliveryUnavailable  = "Sorry, delivery is not available in your area"
	MsgPlaceOrderFailed     = "Failed to place order. Please try again."
	MsgCartEmpty            = "cart is empty"
	MsgInvalidPaymentMethod = "invalid payment method"
	MsgPincodeRequired      = "Pincode is required for delivery area"
	MsgEmailTaken           = "email already used"
)

type HTTPError struct {
	Status  int
	Message string
	Kind    ErrorKind
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// ストア障害だけは再試行してよい
func (e *HTTPError) Retryable() bool {
	return e.Kind == KindStore
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Kind:    kindOf(status),
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func kindOf(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusServiceUnavailable:
		return KindStore
	}
	return KindInternal
}

func validationError(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }
func storeError(msg string) error      { return NewHTTPError(http.StatusServiceUnavailable, msg) }
func notFoundError() error             { return NewHTTPError(http.StatusNotFound, "not found") }
func unauthorizedError() error         { return NewHTTPError(http.StatusUnauthorized, "unauthorized") }
func forbiddenError() error            { return NewHTTPError(http.StatusForbidden, "forbidden") }
