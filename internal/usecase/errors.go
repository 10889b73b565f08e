package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrEntryIndex         = errors.New("entry index out of range")
	ErrUnknownListField   = errors.New("unknown list field")
	ErrListingClosed      = errors.New("listing is closed")
	ErrDeleteNotConfirmed = errors.New("delete was not confirmed")
)

// ValidationError carries one message per invalid field, keyed by wire name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// StoreError is a failed record store call. Err keeps the store's own message.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s doctor: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Message is the store's message as shown to an admin.
func (e *StoreError) Message() string {
	if e.Err == nil {
		return "record store request failed"
	}
	return e.Err.Error()
}
