package service

import (
	"context"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

type StatusService interface {
	AddDailyStatus(ctx context.Context, status *domain.DailyStatus) error
	GetDailyStatuses(ctx context.Context, date string) ([]*domain.DailyStatus, error)
	GetTeamDailyStatuses(ctx context.Context, date, teamID string) ([]*domain.DailyStatus, error)
	HasViewPermission(ctx context.Context, viewerID, targetID string) (bool, error)
	AssociateStatusWithTeam(ctx context.Context, statusKey, teamID string) error
}
