package service

import (
	"context"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

type TeamService interface {
	CreateTeam(ctx context.Context, name, description, creatorID string) (*domain.Team, error)
	UpdateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
	GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error)
	GetAllTeams(ctx context.Context) ([]*domain.Team, error)
	GetTeamsByUserID(ctx context.Context, userID string) ([]*domain.Team, error)
	IsUserInTeam(ctx context.Context, teamID, userID string) (bool, error)
	AddUserToTeam(ctx context.Context, teamID, userID string) error
	RemoveUserFromTeam(ctx context.Context, teamID, userID string) error
	GetTeamMembers(ctx context.Context, teamID string) ([]string, error)

	JoinTeam(ctx context.Context, teamID, userID string) (*domain.Team, error)
	LeaveTeam(ctx context.Context, teamID, userID string) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error)
	RemoveMember(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error)
	PromoteManager(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error)
	DemoteManager(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error)
}
