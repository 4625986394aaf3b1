//go:build integration
// +build integration

package integration

import (
	"testing"

	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/kv"
	"github.com/bagdasarian/standup-bot/internal/repository"
	"github.com/bagdasarian/standup-bot/internal/repository/kvstore"
	"github.com/bagdasarian/standup-bot/internal/service"
)

type testEnv struct {
	store         *kv.MemoryStore
	teamRepo      repository.TeamRepository
	statusRepo    repository.DailyStatusRepository
	teamService   service.TeamService
	statusService service.StatusService
}

// setupEnv собирает полный стек сервисов поверх хранилища в памяти.
// Хранилище в памяти повторяет CAS-семантику удаленного KV, поэтому
// сквозные сценарии проходят через те же ветки кода, что и в бою.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	store := kv.NewMemoryStore()
	teamRepo := kvstore.NewTeamRepository(store, log, 10)
	statusRepo := kvstore.NewStatusRepository(store, log, 10)

	return &testEnv{
		store:         store,
		teamRepo:      teamRepo,
		statusRepo:    statusRepo,
		teamService:   service.NewTeamService(teamRepo),
		statusService: service.NewStatusService(statusRepo, teamRepo),
	}
}
