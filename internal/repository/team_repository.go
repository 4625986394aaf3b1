package repository

import (
	"context"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) (*domain.Team, error)
	Delete(ctx context.Context, teamID string) error
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)
	GetAll(ctx context.Context) ([]*domain.Team, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.Team, error)
	AddUserToTeam(ctx context.Context, teamID, userID string) error
	RemoveUserFromTeam(ctx context.Context, teamID, userID string) error
	GetTeamMembers(ctx context.Context, teamID string) ([]string, error)
	Mutate(ctx context.Context, teamID string, fn func(*domain.Team) error) (*domain.Team, error)
}
