package service

import (
	"context"
	"sort"

	"github.com/bagdasarian/standup-bot/internal/repository"
)

// StaticRoster - фиксированный список получателей из конфигурации
type StaticRoster []string

func (r StaticRoster) Roster(_ context.Context) ([]string, error) {
	return r, nil
}

// TeamRoster собирает всех известных пользователей из команд.
// Используется, когда статический список в конфигурации не задан.
type TeamRoster struct {
	teamRepo repository.TeamRepository
}

func NewTeamRoster(teamRepo repository.TeamRepository) *TeamRoster {
	return &TeamRoster{teamRepo: teamRepo}
}

func (r *TeamRoster) Roster(ctx context.Context) ([]string, error) {
	teams, err := r.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, team := range teams {
		for _, id := range team.MemberIDs() {
			seen[id] = struct{}{}
		}
	}

	users := make([]string, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
