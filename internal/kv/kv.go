package kv

import (
	"context"
	"errors"
)

var (
	// ErrVersionMismatch - запись изменилась с момента чтения (нарушено условие If-Match)
	ErrVersionMismatch = errors.New("kv: version mismatch")

	// ErrUnavailable - хранилище недоступно: таймаут, сбой транспорта или 5xx
	ErrUnavailable = errors.New("kv: store unavailable")
)

// Record - значение вместе с версией, выданной хранилищем при чтении
type Record struct {
	Value   []byte
	Version string
}

// Entry - элемент выборки по префиксу
type Entry struct {
	Key     string
	Value   []byte
	Version string
}

type PutOptions struct {
	// IfVersion - записать только если текущая версия совпадает.
	// Пустая строка означает безусловную запись.
	IfVersion string
	// IfAbsent - записать только если ключа ещё нет
	IfAbsent bool
}

// Store - клиент удалённого key-value хранилища.
// Get возвращает (nil, nil) для отсутствующего ключа: "нет данных" и
// "хранилище недоступно" обязаны быть различимы.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, key string, value []byte, opts PutOptions) error
	Delete(ctx context.Context, key string) error
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
