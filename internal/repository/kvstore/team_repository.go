package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/kv"
)

type teamRepository struct {
	store      kv.Store
	logger     *zap.Logger
	maxRetries int
}

// NewTeamRepository создает репозиторий команд поверх key-value хранилища
func NewTeamRepository(store kv.Store, logger *zap.Logger, maxRetries int) *teamRepository {
	if maxRetries <= 0 {
		maxRetries = defaultMaxWrites
	}
	return &teamRepository{
		store:      store,
		logger:     logger,
		maxRetries: maxRetries,
	}
}

// Create сохраняет новую команду и добавляет её ID в индекс всех команд.
// Если ID не задан, генерируется новый.
func (r *teamRepository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}

	value, err := json.Marshal(teamToRecord(team))
	if err != nil {
		return nil, domain.ErrSerialization
	}

	if err := r.store.Put(ctx, teamKeyPrefix+team.ID, value, kv.PutOptions{}); err != nil {
		return nil, translateStoreError(err)
	}

	if err := r.appendToIndex(ctx, team.ID); err != nil {
		return nil, err
	}

	return team, nil
}

// Update перезаписывает команду состоянием вызывающего.
// Запись условная: если версия изменилась с момента чтения, цикл
// повторяется с ограниченным бюджетом, после исчерпания - CONFLICT.
func (r *teamRepository) Update(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	if team.ID == "" {
		return nil, domain.NewNotFoundError("team")
	}

	value, err := json.Marshal(teamToRecord(team))
	if err != nil {
		return nil, domain.ErrSerialization
	}

	key := teamKeyPrefix + team.ID
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		record, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, translateStoreError(err)
		}
		if record == nil {
			return nil, domain.NewNotFoundError("team " + team.ID)
		}

		err = r.store.Put(ctx, key, value, kv.PutOptions{IfVersion: record.Version})
		if err == nil {
			return team, nil
		}
		if !errors.Is(err, kv.ErrVersionMismatch) {
			return nil, translateStoreError(err)
		}
	}

	r.logger.Warn("team update retries exhausted", zap.String("team_id", team.ID))
	return nil, domain.ErrConflict
}

// Mutate применяет fn к свежепрочитанному состоянию команды и записывает
// результат условно. При конфликте версий состояние перечитывается и fn
// применяется заново, поэтому независимые мутации не теряют друг друга.
// Отсутствующая команда - не ошибка, возвращается (nil, nil).
func (r *teamRepository) Mutate(ctx context.Context, teamID string, fn func(*domain.Team) error) (*domain.Team, error) {
	key := teamKeyPrefix + teamID

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		record, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, translateStoreError(err)
		}
		if record == nil {
			return nil, nil
		}

		var rec teamRecord
		if err := unmarshalRecord(record.Value, &rec); err != nil {
			r.logger.Error("corrupt team record",
				zap.String("key", key),
				zap.ByteString("value", record.Value))
			return nil, err
		}

		team := recordToTeam(rec)
		if err := fn(team); err != nil {
			return nil, err
		}

		value, err := json.Marshal(teamToRecord(team))
		if err != nil {
			return nil, domain.ErrSerialization
		}

		err = r.store.Put(ctx, key, value, kv.PutOptions{IfVersion: record.Version})
		if err == nil {
			return team, nil
		}
		if !errors.Is(err, kv.ErrVersionMismatch) {
			return nil, translateStoreError(err)
		}
	}

	r.logger.Warn("team mutate retries exhausted", zap.String("team_id", teamID))
	return nil, domain.ErrConflict
}

// Delete удаляет команду. Сначала ID убирается из индекса, затем
// удаляется запись: упавшая посередине операция оставит осиротевшую
// запись без входа в индексе, но не висящий индекс на пустую запись.
func (r *teamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.removeFromIndex(ctx, teamID); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, teamKeyPrefix+teamID); err != nil {
		return translateStoreError(err)
	}
	return nil
}

// GetByID возвращает (nil, nil) для отсутствующей команды
func (r *teamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	record, err := r.store.Get(ctx, teamKeyPrefix+teamID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if record == nil {
		return nil, nil
	}

	var rec teamRecord
	if err := unmarshalRecord(record.Value, &rec); err != nil {
		r.logger.Error("corrupt team record",
			zap.String("key", teamKeyPrefix+teamID),
			zap.ByteString("value", record.Value))
		return nil, err
	}

	return recordToTeam(rec), nil
}

// GetAll читает индекс и загружает каждую команду. Идентификаторы без
// записи молча пропускаются: это восстановимый мусор после сбоя Create.
func (r *teamRepository) GetAll(ctx context.Context) ([]*domain.Team, error) {
	ids, _, err := r.readIndex(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]*domain.Team, 0, len(ids))
	for _, id := range ids {
		team, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if team == nil {
			continue
		}
		teams = append(teams, team)
	}

	return teams, nil
}

func (r *teamRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Team, error) {
	teams, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []*domain.Team
	for _, team := range teams {
		if team.IsMember(userID) || team.IsManager(userID) {
			result = append(result, team)
		}
	}
	return result, nil
}

// AddUserToTeam добавляет участника через условную запись.
// Отсутствующая команда - no-op, не ошибка.
func (r *teamRepository) AddUserToTeam(ctx context.Context, teamID, userID string) error {
	_, err := r.Mutate(ctx, teamID, func(team *domain.Team) error {
		team.AddMember(userID)
		return nil
	})
	return err
}

func (r *teamRepository) RemoveUserFromTeam(ctx context.Context, teamID, userID string) error {
	_, err := r.Mutate(ctx, teamID, func(team *domain.Team) error {
		team.RemoveMember(userID)
		return nil
	})
	return err
}

// GetTeamMembers возвращает пустой список для отсутствующей команды
func (r *teamRepository) GetTeamMembers(ctx context.Context, teamID string) ([]string, error) {
	team, err := r.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return []string{}, nil
	}
	return team.MemberIDs(), nil
}

func (r *teamRepository) readIndex(ctx context.Context) ([]string, string, error) {
	record, err := r.store.Get(ctx, allTeamsKey)
	if err != nil {
		return nil, "", translateStoreError(err)
	}
	if record == nil {
		return nil, "", nil
	}

	var ids []string
	if err := unmarshalRecord(record.Value, &ids); err != nil {
		r.logger.Error("corrupt team index", zap.ByteString("value", record.Value))
		return nil, "", err
	}
	return ids, record.Version, nil
}

func (r *teamRepository) appendToIndex(ctx context.Context, teamID string) error {
	return r.updateIndex(ctx, teamID, true)
}

func (r *teamRepository) removeFromIndex(ctx context.Context, teamID string) error {
	return r.updateIndex(ctx, teamID, false)
}

// updateIndex выполняет read-merge-write над индексом всех команд.
// Индекс - общий документ для всех писателей, поэтому запись условная,
// с тем же бюджетом повторов, что и у записей команд.
func (r *teamRepository) updateIndex(ctx context.Context, teamID string, add bool) error {
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		ids, version, err := r.readIndex(ctx)
		if err != nil {
			return err
		}

		updated := make([]string, 0, len(ids)+1)
		found := false
		for _, id := range ids {
			if id == teamID {
				found = true
				if !add {
					continue
				}
			}
			updated = append(updated, id)
		}

		if add && found {
			return nil
		}
		if !add && !found {
			return nil
		}
		if add {
			updated = append(updated, teamID)
		}

		value, err := json.Marshal(updated)
		if err != nil {
			return domain.ErrSerialization
		}

		opts := kv.PutOptions{IfVersion: version}
		if version == "" {
			opts = kv.PutOptions{IfAbsent: true}
		}

		err = r.store.Put(ctx, allTeamsKey, value, opts)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrVersionMismatch) {
			return translateStoreError(err)
		}
	}

	r.logger.Warn("team index retries exhausted", zap.String("team_id", teamID))
	return domain.ErrConflict
}
