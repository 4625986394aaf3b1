package service

import (
	"context"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/repository"
)

type teamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService создает новый экземпляр TeamService
func NewTeamService(teamRepo repository.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

// CreateTeam создает команду; создатель становится единственным
// менеджером и участником
func (s *teamService) CreateTeam(ctx context.Context, name, description, creatorID string) (*domain.Team, error) {
	team := domain.NewTeam(name, description)
	team.AddManager(creatorID)

	return s.teamRepo.Create(ctx, team)
}

// UpdateTeam перезаписывает команду состоянием вызывающего
func (s *teamService) UpdateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	return s.teamRepo.Update(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID string) error {
	return s.teamRepo.Delete(ctx, teamID)
}

// GetTeamByID возвращает NOT_FOUND для отсутствующей команды
func (s *teamService) GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.NewNotFoundError("team " + teamID)
	}
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

func (s *teamService) GetTeamsByUserID(ctx context.Context, userID string) ([]*domain.Team, error) {
	return s.teamRepo.GetByUserID(ctx, userID)
}

func (s *teamService) IsUserInTeam(ctx context.Context, teamID, userID string) (bool, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	return team.IsMember(userID) || team.IsManager(userID), nil
}

func (s *teamService) AddUserToTeam(ctx context.Context, teamID, userID string) error {
	return s.teamRepo.AddUserToTeam(ctx, teamID, userID)
}

func (s *teamService) RemoveUserFromTeam(ctx context.Context, teamID, userID string) error {
	return s.teamRepo.RemoveUserFromTeam(ctx, teamID, userID)
}

func (s *teamService) GetTeamMembers(ctx context.Context, teamID string) ([]string, error) {
	return s.teamRepo.GetTeamMembers(ctx, teamID)
}

// JoinTeam добавляет пользователя в команду по его собственной инициативе.
// Повторное вступление идемпотентно.
func (s *teamService) JoinTeam(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		team.AddMember(userID)
		return nil
	})
}

// LeaveTeam выводит пользователя из команды. Последний менеджер не может
// уйти, не передав роль: сначала promote преемника.
func (s *teamService) LeaveTeam(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		if !team.IsMember(userID) {
			return domain.NewInvalidStateError("you are not a member of this team")
		}
		if team.IsManager(userID) && len(team.Managers) <= 1 {
			return domain.NewInvalidStateError("you are the only manager of this team, promote another member first")
		}
		team.RemoveMember(userID)
		return nil
	})
}

// AddMember добавляет участника от имени менеджера
func (s *teamService) AddMember(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		if !team.IsManager(actorID) {
			return domain.ErrNotManager
		}
		team.AddMember(userID)
		return nil
	})
}

// RemoveMember удаляет участника от имени менеджера.
// Себя удалить нельзя (для этого есть LeaveTeam), последнего менеджера - тоже.
func (s *teamService) RemoveMember(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		if !team.IsManager(actorID) {
			return domain.ErrNotManager
		}
		if userID == actorID {
			return domain.NewInvalidStateError("you cannot remove yourself, leave the team instead")
		}
		if !team.IsMember(userID) {
			return domain.NewInvalidStateError("user is not a member of this team")
		}
		if team.IsManager(userID) && len(team.Managers) <= 1 {
			return domain.NewInvalidStateError("user is the last manager of this team, promote another member first")
		}
		team.RemoveMember(userID)
		return nil
	})
}

// PromoteManager назначает участника менеджером.
// Менеджер автоматически остается участником.
func (s *teamService) PromoteManager(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		if !team.IsManager(actorID) {
			return domain.ErrNotManager
		}
		if !team.IsMember(userID) {
			return domain.NewInvalidStateError("user is not a member of this team")
		}
		team.AddManager(userID)
		return nil
	})
}

// DemoteManager снимает роль менеджера. Последнего менеджера
// понизить нельзя.
func (s *teamService) DemoteManager(ctx context.Context, teamID, actorID, userID string) (*domain.Team, error) {
	return s.mutateExisting(ctx, teamID, func(team *domain.Team) error {
		if !team.IsManager(actorID) {
			return domain.ErrNotManager
		}
		if !team.IsManager(userID) {
			return domain.NewInvalidStateError("user is not a manager of this team")
		}
		if len(team.Managers) <= 1 {
			return domain.NewInvalidStateError("cannot demote the last manager, promote another member first")
		}
		team.RemoveManager(userID)
		return nil
	})
}

// mutateExisting применяет мутацию к существующей команде.
// Проверки политики выполняются внутри условного цикла записи репозитория,
// то есть всегда против свежего состояния команды.
func (s *teamService) mutateExisting(ctx context.Context, teamID string, fn func(*domain.Team) error) (*domain.Team, error) {
	team, err := s.teamRepo.Mutate(ctx, teamID, fn)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.NewNotFoundError("team " + teamID)
	}
	return team, nil
}
