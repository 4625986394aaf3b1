package kv

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore - хранилище в памяти процесса с теми же CAS-семантиками,
// что и у CloudflareStore. Используется в тестах и локальной разработке.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	counter uint64
}

type memoryRecord struct {
	value   []byte
	version string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}

	value := make([]byte, len(rec.value))
	copy(value, rec.value)
	return &Record{Value: value, Version: rec.version}, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, opts PutOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.IfVersion != "" {
		current, ok := s.records[key]
		if !ok || current.version != opts.IfVersion {
			return ErrVersionMismatch
		}
	}
	if opts.IfAbsent {
		if _, ok := s.records[key]; ok {
			return ErrVersionMismatch
		}
	}

	s.counter++
	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[key] = memoryRecord{
		value:   stored,
		version: strconv.FormatUint(s.counter, 10),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *MemoryStore) ListByPrefix(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []Entry
	for key, rec := range s.records {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		value := make([]byte, len(rec.value))
		copy(value, rec.value)
		entries = append(entries, Entry{Key: key, Value: value, Version: rec.version})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}
