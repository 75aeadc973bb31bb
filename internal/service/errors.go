package service

import "errors"

// Категории ошибок. Конкретные сообщения оборачиваются в kindError,
// чтобы хэндлер мог матчить категорию через errors.Is, а наружу уходил
// человекочитаемый текст.
var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication error")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string { return e.msg }

func (e kindError) Is(target error) bool { return target == e.kind }

func validationError(msg string) error { return kindError{kind: ErrValidation, msg: msg} }

func conflictError(msg string) error { return kindError{kind: ErrConflict, msg: msg} }

func authenticationError(msg string) error { return kindError{kind: ErrAuthentication, msg: msg} }

func forbiddenError(msg string) error { return kindError{kind: ErrForbidden, msg: msg} }

func notFoundError(msg string) error { return kindError{kind: ErrNotFound, msg: msg} }
