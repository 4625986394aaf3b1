package kvstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/kv"
)

func setupStatusRepo(t *testing.T) (*statusRepository, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return NewStatusRepository(store, zap.NewNop(), 3), store
}

func TestStatusRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("составной ключ разделяет дни", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		require.NoError(t, repo.Add(ctx, &domain.DailyStatus{
			DeveloperID: "u1", Date: "2024-01-05", Availability: "Available", Tasks: "API review",
		}))
		require.NoError(t, repo.Add(ctx, &domain.DailyStatus{
			DeveloperID: "u1", Date: "2024-01-06", Availability: "Busy", Tasks: "Refactoring",
		}))

		statuses, err := repo.GetByDate(ctx, "2024-01-05")
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "2024-01-05", statuses[0].Date)
		assert.Equal(t, "Available", statuses[0].Availability)
	})

	t.Run("повторная отправка за день перезаписывает статус", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		require.NoError(t, repo.Add(ctx, &domain.DailyStatus{
			DeveloperID: "u1", Date: "2024-01-05", Availability: "Available", Tasks: "old",
		}))
		require.NoError(t, repo.Add(ctx, &domain.DailyStatus{
			DeveloperID: "u1", Date: "2024-01-05", Availability: "Busy", Tasks: "new",
		}))

		statuses, err := repo.GetByDate(ctx, "2024-01-05")
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "new", statuses[0].Tasks)
	})
}

func TestStatusRepository_GetByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("дата без статусов дает пустой список", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		statuses, err := repo.GetByDate(ctx, "2024-01-05")
		require.NoError(t, err)
		assert.Empty(t, statuses)
	})

	t.Run("поврежденная запись дает SERIALIZATION_ERROR", func(t *testing.T) {
		repo, store := setupStatusRepo(t)

		require.NoError(t, store.Put(ctx, "status:2024-01-05:u1", []byte("{broken"), kv.PutOptions{}))

		_, err := repo.GetByDate(ctx, "2024-01-05")
		assert.ErrorIs(t, err, domain.ErrSerialization)
	})
}

func TestStatusRepository_AssociateWithTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("связь создается лениво и накапливается", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		require.NoError(t, repo.AssociateWithTeam(ctx, "2024-01-05:u1", "t1"))
		require.NoError(t, repo.AssociateWithTeam(ctx, "2024-01-05:u1", "t2"))

		teams, err := repo.GetAssociatedTeams(ctx, "2024-01-05:u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"t1", "t2"}, teams)
	})

	t.Run("повторная связь идемпотентна", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		require.NoError(t, repo.AssociateWithTeam(ctx, "2024-01-05:u1", "t1"))
		require.NoError(t, repo.AssociateWithTeam(ctx, "2024-01-05:u1", "t1"))

		teams, err := repo.GetAssociatedTeams(ctx, "2024-01-05:u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"t1"}, teams)
	})

	t.Run("конкурентные связи не теряются", func(t *testing.T) {
		store := kv.NewMemoryStore()
		repo := NewStatusRepository(store, zap.NewNop(), 10)

		teamIDs := []string{"t1", "t2", "t3", "t4"}
		var wg sync.WaitGroup
		errs := make([]error, len(teamIDs))
		for i, teamID := range teamIDs {
			wg.Add(1)
			go func(i int, teamID string) {
				defer wg.Done()
				errs[i] = repo.AssociateWithTeam(ctx, "2024-01-05:u1", teamID)
			}(i, teamID)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		teams, err := repo.GetAssociatedTeams(ctx, "2024-01-05:u1")
		require.NoError(t, err)
		assert.Len(t, teams, len(teamIDs))
	})
}

func TestStatusRepository_GetAssociatedTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("статус без связей дает пустой список", func(t *testing.T) {
		repo, _ := setupStatusRepo(t)

		teams, err := repo.GetAssociatedTeams(ctx, "2024-01-05:u1")
		require.NoError(t, err)
		assert.Empty(t, teams)
	})
}
