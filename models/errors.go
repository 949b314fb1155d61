package models

import "fmt"

// ErrorDuplicate is returned when creation is blocked by the duplicate rule.
// It carries the conflicting record's id so the caller can offer "view
// existing".
type ErrorDuplicate struct {
	ConflictID uint
}

func (e ErrorDuplicate) Error() string {
	return fmt.Sprintf("duplicate publication, conflicts with id %d", e.ConflictID)
}

type ErrorNotFound struct {
	Entity string
	ID     uint
}

func (e ErrorNotFound) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type ErrorForbidden struct {
	Reason string
}

func (e ErrorForbidden) Error() string {
	return "forbidden: " + e.Reason
}

type ErrorValidation struct {
	Field  string
	Reason string
}

func (e ErrorValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrorInternalServer wraps an underlying store failure.
type ErrorInternalServer struct {
	Op  string
	Err error
}

func (e ErrorInternalServer) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ErrorInternalServer) Unwrap() error { return e.Err }
