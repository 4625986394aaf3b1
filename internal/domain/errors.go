package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}

	// ErrConflict - исчерпаны попытки разрешить конкурентное обновление
	ErrConflict = &DomainError{
		Code:    "CONFLICT",
		Message: "concurrent update conflict, please retry",
	}

	// ErrInvalidState - операция нарушает инвариант команды
	ErrInvalidState = &DomainError{
		Code:    "INVALID_STATE",
		Message: "operation is not allowed in the current state",
	}

	// ErrNotManager - операция доступна только менеджеру команды
	ErrNotManager = &DomainError{
		Code:    "NOT_MANAGER",
		Message: "only a team manager can perform this operation",
	}

	// ErrSerialization - повреждённая запись в хранилище
	ErrSerialization = &DomainError{
		Code:    "SERIALIZATION_ERROR",
		Message: "stored record is corrupted",
	}

	// ErrStoreUnavailable - хранилище недоступно (таймаут или сбой транспорта)
	ErrStoreUnavailable = &DomainError{
		Code:    "STORE_UNAVAILABLE",
		Message: "key-value store is unavailable",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInvalidStateError создает ошибку INVALID_STATE с текстом для пользователя
func NewInvalidStateError(message string) *DomainError {
	return &DomainError{
		Code:    "INVALID_STATE",
		Message: message,
	}
}
