package service

import (
	"context"
	"time"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/repository"
)

type statusService struct {
	statusRepo repository.DailyStatusRepository
	teamRepo   repository.TeamRepository
}

// NewStatusService создает новый экземпляр StatusService
func NewStatusService(statusRepo repository.DailyStatusRepository, teamRepo repository.TeamRepository) StatusService {
	return &statusService{
		statusRepo: statusRepo,
		teamRepo:   teamRepo,
	}
}

// AddDailyStatus сохраняет статус и связывает его со всеми командами,
// в которых отправитель состоит на момент отправки
func (s *statusService) AddDailyStatus(ctx context.Context, status *domain.DailyStatus) error {
	if status.Date == "" {
		status.Date = time.Now().Format("2006-01-02")
	}

	if err := s.statusRepo.Add(ctx, status); err != nil {
		return err
	}

	teams, err := s.teamRepo.GetByUserID(ctx, status.DeveloperID)
	if err != nil {
		return err
	}

	for _, team := range teams {
		if err := s.statusRepo.AssociateWithTeam(ctx, status.Key(), team.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *statusService) GetDailyStatuses(ctx context.Context, date string) ([]*domain.DailyStatus, error) {
	return s.statusRepo.GetByDate(ctx, date)
}

// GetTeamDailyStatuses возвращает статусы за дату только от участников команды
func (s *statusService) GetTeamDailyStatuses(ctx context.Context, date, teamID string) ([]*domain.DailyStatus, error) {
	statuses, err := s.statusRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	members, err := s.teamRepo.GetTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	memberSet := make(map[string]struct{}, len(members))
	for _, id := range members {
		memberSet[id] = struct{}{}
	}

	result := make([]*domain.DailyStatus, 0, len(statuses))
	for _, status := range statuses {
		if _, ok := memberSet[status.DeveloperID]; ok {
			result = append(result, status)
		}
	}

	return result, nil
}

// HasViewPermission решает, может ли viewer смотреть статус target.
// Свой статус виден всегда. Чужой - только при общей команде: viewer
// состоит (как участник или менеджер) в команде, содержащей target.
func (s *statusService) HasViewPermission(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	viewerTeams, err := s.teamRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		return false, err
	}

	for _, team := range viewerTeams {
		if team.IsMember(targetID) || team.IsManager(targetID) {
			return true, nil
		}
	}

	return false, nil
}

func (s *statusService) AssociateStatusWithTeam(ctx context.Context, statusKey, teamID string) error {
	return s.statusRepo.AssociateWithTeam(ctx, statusKey, teamID)
}
