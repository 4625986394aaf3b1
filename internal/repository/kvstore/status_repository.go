package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/kv"
)

type statusRepository struct {
	store      kv.Store
	logger     *zap.Logger
	maxRetries int
}

// NewStatusRepository создает репозиторий ежедневных статусов
func NewStatusRepository(store kv.Store, logger *zap.Logger, maxRetries int) *statusRepository {
	if maxRetries <= 0 {
		maxRetries = defaultMaxWrites
	}
	return &statusRepository{
		store:      store,
		logger:     logger,
		maxRetries: maxRetries,
	}
}

// Add сохраняет статус под составным ключом "status:<date>:<developerId>".
// Повторная отправка в тот же день перезаписывает предыдущий статус,
// поэтому запись безусловная.
func (r *statusRepository) Add(ctx context.Context, status *domain.DailyStatus) error {
	value, err := json.Marshal(statusToRecord(status))
	if err != nil {
		return domain.ErrSerialization
	}

	if err := r.store.Put(ctx, statusKeyPrefix+status.Key(), value, kv.PutOptions{}); err != nil {
		return translateStoreError(err)
	}
	return nil
}

// GetByDate возвращает все статусы за дату через выборку по префиксу.
// Составной ключ гарантирует, что разные дни не пересекаются.
func (r *statusRepository) GetByDate(ctx context.Context, date string) ([]*domain.DailyStatus, error) {
	entries, err := r.store.ListByPrefix(ctx, statusKeyPrefix+date+":")
	if err != nil {
		return nil, translateStoreError(err)
	}

	statuses := make([]*domain.DailyStatus, 0, len(entries))
	for _, entry := range entries {
		var rec statusRecord
		if err := unmarshalRecord(entry.Value, &rec); err != nil {
			r.logger.Error("corrupt status record",
				zap.String("key", entry.Key),
				zap.ByteString("value", entry.Value))
			return nil, err
		}
		statuses = append(statuses, recordToStatus(rec))
	}

	return statuses, nil
}

// AssociateWithTeam добавляет команду в набор команд статуса.
// Набор - общий документ: два одновременных сабмита могут гоняться за
// одним ключом, поэтому запись условная с ограниченным числом повторов.
func (r *statusRepository) AssociateWithTeam(ctx context.Context, statusKey, teamID string) error {
	key := assocKeyPrefix + statusKey

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		record, err := r.store.Get(ctx, key)
		if err != nil {
			return translateStoreError(err)
		}

		var teamIDs []string
		version := ""
		if record != nil {
			if err := unmarshalRecord(record.Value, &teamIDs); err != nil {
				r.logger.Error("corrupt association record",
					zap.String("key", key),
					zap.ByteString("value", record.Value))
				return err
			}
			version = record.Version
		}

		for _, id := range teamIDs {
			if id == teamID {
				return nil
			}
		}
		teamIDs = append(teamIDs, teamID)

		value, err := json.Marshal(teamIDs)
		if err != nil {
			return domain.ErrSerialization
		}

		opts := kv.PutOptions{IfVersion: version}
		if version == "" {
			opts = kv.PutOptions{IfAbsent: true}
		}

		err = r.store.Put(ctx, key, value, opts)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrVersionMismatch) {
			return translateStoreError(err)
		}
	}

	r.logger.Warn("association retries exhausted",
		zap.String("status_key", statusKey),
		zap.String("team_id", teamID))
	return domain.ErrConflict
}

// GetAssociatedTeams возвращает пустой список для статуса без связей
func (r *statusRepository) GetAssociatedTeams(ctx context.Context, statusKey string) ([]string, error) {
	record, err := r.store.Get(ctx, assocKeyPrefix+statusKey)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if record == nil {
		return []string{}, nil
	}

	var teamIDs []string
	if err := unmarshalRecord(record.Value, &teamIDs); err != nil {
		r.logger.Error("corrupt association record",
			zap.String("key", assocKeyPrefix+statusKey),
			zap.ByteString("value", record.Value))
		return nil, err
	}
	return teamIDs, nil
}
