package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const transportRetries = 2

// CloudflareStore - клиент Cloudflare Workers KV поверх HTTP API.
// Версией записи служит ETag ответа; условная запись выполняется
// через заголовок If-Match, 412 означает конфликт версий.
type CloudflareStore struct {
	client      *http.Client
	logger      *zap.Logger
	baseURL     string
	apiToken    string
	accountID   string
	namespaceID string
}

type CloudflareConfig struct {
	BaseURL     string
	APIToken    string
	AccountID   string
	NamespaceID string
	Timeout     time.Duration
}

// NewCloudflareStore создает новый клиент Cloudflare KV
func NewCloudflareStore(cfg CloudflareConfig, logger *zap.Logger) *CloudflareStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &CloudflareStore{
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
		baseURL:     cfg.BaseURL,
		apiToken:    cfg.APIToken,
		accountID:   cfg.AccountID,
		namespaceID: cfg.NamespaceID,
	}
}

func (s *CloudflareStore) valueURL(key string) string {
	return fmt.Sprintf("%s/accounts/%s/storage/kv/namespaces/%s/values/%s",
		s.baseURL, s.accountID, s.namespaceID, url.PathEscape(key))
}

func (s *CloudflareStore) keysURL(prefix string) string {
	return fmt.Sprintf("%s/accounts/%s/storage/kv/namespaces/%s/keys?prefix=%s",
		s.baseURL, s.accountID, s.namespaceID, url.QueryEscape(prefix))
}

func (s *CloudflareStore) Get(ctx context.Context, key string) (*Record, error) {
	var record *Record

	err := s.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.valueURL(key), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		s.authorize(req)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			record = nil
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("kv get %q: status %d", key, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("kv get %q: status %d", key, resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		record = &Record{
			Value:   body,
			Version: resp.Header.Get("ETag"),
		}
		return nil
	})
	if err != nil {
		s.logger.Error("kv get failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return record, nil
}

func (s *CloudflareStore) Put(ctx context.Context, key string, value []byte, opts PutOptions) error {
	err := s.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.valueURL(key), bytes.NewReader(value))
		if err != nil {
			return backoff.Permanent(err)
		}
		s.authorize(req)
		req.Header.Set("Content-Type", "application/json")
		if opts.IfVersion != "" {
			req.Header.Set("If-Match", opts.IfVersion)
		}
		if opts.IfAbsent {
			req.Header.Set("If-None-Match", "*")
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode == http.StatusPreconditionFailed:
			return backoff.Permanent(ErrVersionMismatch)
		case resp.StatusCode >= 500:
			return fmt.Errorf("kv put %q: status %d", key, resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("kv put %q: status %d", key, resp.StatusCode))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return ErrVersionMismatch
		}
		s.logger.Error("kv put failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

func (s *CloudflareStore) Delete(ctx context.Context, key string) error {
	err := s.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.valueURL(key), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		s.authorize(req)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		// Удаление отсутствующего ключа не считается ошибкой
		case resp.StatusCode == http.StatusNotFound:
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("kv delete %q: status %d", key, resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("kv delete %q: status %d", key, resp.StatusCode))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("kv delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// ListByPrefix возвращает все записи с указанным префиксом ключа.
// Cloudflare KV не умеет отдавать значения пачкой, поэтому после
// выборки ключей каждое значение читается отдельным запросом.
func (s *CloudflareStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var keys []string

	err := s.withRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.keysURL(prefix), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		s.authorize(req)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("kv list %q: status %d", prefix, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("kv list %q: status %d", prefix, resp.StatusCode))
		}

		var listResp struct {
			Result []struct {
				Name string `json:"name"`
			} `json:"result"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
			return backoff.Permanent(fmt.Errorf("kv list %q: decode: %v", prefix, err))
		}

		keys = keys[:0]
		for _, k := range listResp.Result {
			keys = append(keys, k.Name)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("kv list failed", zap.String("prefix", prefix), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		record, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		// Ключ мог быть удалён между выборкой списка и чтением значения
		if record == nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: record.Value, Version: record.Version})
	}

	return entries, nil
}

func (s *CloudflareStore) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
}

func (s *CloudflareStore) withRetry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), transportRetries), ctx)

	err := backoff.Retry(op, policy)
	if permanent, ok := err.(*backoff.PermanentError); ok {
		return permanent.Err
	}
	return err
}
