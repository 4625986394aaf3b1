package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) Delete(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetAll(ctx context.Context) ([]*domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) AddUserToTeam(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamRepository) RemoveUserFromTeam(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamRepository) GetTeamMembers(ctx context.Context, teamID string) ([]string, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mutate прогоняет fn через команду из ожидания, как это делает
// настоящий репозиторий со свежепрочитанным состоянием
func (m *MockTeamRepository) Mutate(ctx context.Context, teamID string, fn func(*domain.Team) error) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	team := args.Get(0).(*domain.Team)
	if err := fn(team); err != nil {
		return nil, err
	}
	return team, args.Error(1)
}

type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Add(ctx context.Context, status *domain.DailyStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) GetByDate(ctx context.Context, date string) ([]*domain.DailyStatus, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyStatus), args.Error(1)
}

func (m *MockStatusRepository) AssociateWithTeam(ctx context.Context, statusKey, teamID string) error {
	args := m.Called(ctx, statusKey, teamID)
	return args.Error(0)
}

func (m *MockStatusRepository) GetAssociatedTeams(ctx context.Context, statusKey string) ([]string, error) {
	args := m.Called(ctx, statusKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendMessage(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

type MockRosterSource struct {
	mock.Mock
}

func (m *MockRosterSource) Roster(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
