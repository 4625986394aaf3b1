package repository

import (
	"context"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

type DailyStatusRepository interface {
	Add(ctx context.Context, status *domain.DailyStatus) error
	GetByDate(ctx context.Context, date string) ([]*domain.DailyStatus, error)
	AssociateWithTeam(ctx context.Context, statusKey, teamID string) error
	GetAssociatedTeams(ctx context.Context, statusKey string) ([]string, error)
}
