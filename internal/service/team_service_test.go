package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

func storedTeam(id, name string, managers []string, members []string) *domain.Team {
	team := domain.NewTeam(name, "")
	team.ID = id
	for _, m := range members {
		team.AddMember(m)
	}
	for _, m := range managers {
		team.AddManager(m)
	}
	return team
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Run("создатель становится единственным менеджером и участником", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(team *domain.Team) bool {
			return team.Name == "backend" &&
				team.IsManager("u1") &&
				team.IsMember("u1") &&
				len(team.Members) == 1 &&
				len(team.Managers) == 1
		})).Return(storedTeam("t1", "backend", []string{"u1"}, nil), nil).Once()

		team, err := service.CreateTeam(ctx, "backend", "core services", "u1")

		require.NoError(t, err)
		assert.Equal(t, "t1", team.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestTeamService_GetTeamByID(t *testing.T) {
	t.Run("отсутствующая команда дает NOT_FOUND", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

		_, err := service.GetTeamByID(ctx, "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestTeamService_JoinTeam(t *testing.T) {
	t.Run("успешное вступление", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, nil), nil).Once()

		team, err := service.JoinTeam(ctx, "t1", "u1")

		require.NoError(t, err)
		assert.True(t, team.IsMember("u1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("повторное вступление идемпотентно", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		stored := storedTeam("t1", "backend", []string{"m1"}, []string{"u1"})
		mockRepo.On("Mutate", mock.Anything, "t1").Return(stored, nil).Once()

		team, err := service.JoinTeam(ctx, "t1", "u1")

		require.NoError(t, err)
		assert.Len(t, team.Members, 2)
	})

	t.Run("вступление в несуществующую команду дает NOT_FOUND", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "missing").Return(nil, nil).Once()

		_, err := service.JoinTeam(ctx, "missing", "u1")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTeamService_LeaveTeam(t *testing.T) {
	t.Run("последний менеджер не может уйти", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		_, err := service.LeaveTeam(ctx, "t1", "m1")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("менеджер уходит после передачи роли", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1", "m2"}, nil), nil).Once()

		team, err := service.LeaveTeam(ctx, "t1", "m1")

		require.NoError(t, err)
		assert.False(t, team.IsMember("m1"))
		assert.False(t, team.IsManager("m1"))
		assert.True(t, team.IsManager("m2"))
	})

	t.Run("не участник не может уйти", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, nil), nil).Once()

		_, err := service.LeaveTeam(ctx, "t1", "stranger")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestTeamService_AddMember(t *testing.T) {
	t.Run("менеджер добавляет участника", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, nil), nil).Once()

		team, err := service.AddMember(ctx, "t1", "m1", "u1")

		require.NoError(t, err)
		assert.True(t, team.IsMember("u1"))
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		_, err := service.AddMember(ctx, "t1", "u1", "u2")

		assert.ErrorIs(t, err, domain.ErrNotManager)
	})
}

func TestTeamService_RemoveMember(t *testing.T) {
	t.Run("удаление себя запрещено", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1", "m2"}, nil), nil).Once()

		_, err := service.RemoveMember(ctx, "t1", "m1", "m1")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("удаление участника снимает роль менеджера", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1", "m2"}, nil), nil).Once()

		team, err := service.RemoveMember(ctx, "t1", "m1", "m2")

		require.NoError(t, err)
		assert.False(t, team.IsMember("m2"))
		assert.False(t, team.IsManager("m2"))
	})

	t.Run("не участника удалить нельзя", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, nil), nil).Once()

		_, err := service.RemoveMember(ctx, "t1", "m1", "stranger")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestTeamService_PromoteManager(t *testing.T) {
	t.Run("участник становится менеджером", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		team, err := service.PromoteManager(ctx, "t1", "m1", "u1")

		require.NoError(t, err)
		assert.True(t, team.IsManager("u1"))
		assert.True(t, team.IsMember("u1"))
	})

	t.Run("не участника повысить нельзя", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, nil), nil).Once()

		_, err := service.PromoteManager(ctx, "t1", "m1", "stranger")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestTeamService_DemoteManager(t *testing.T) {
	t.Run("единственного менеджера понизить нельзя", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		_, err := service.DemoteManager(ctx, "t1", "m1", "m1")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("понижение при двух менеджерах проходит", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1", "m2"}, nil), nil).Once()

		team, err := service.DemoteManager(ctx, "t1", "m1", "m2")

		require.NoError(t, err)
		assert.False(t, team.IsManager("m2"))
		assert.True(t, team.IsMember("m2"))
	})

	t.Run("понизить не менеджера нельзя", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Mutate", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		_, err := service.DemoteManager(ctx, "t1", "m1", "u1")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestTeamService_IsUserInTeam(t *testing.T) {
	t.Run("отсутствующая команда дает false без ошибки", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

		ok, err := service.IsUserInTeam(ctx, "missing", "u1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("участник находится", func(t *testing.T) {
		mockRepo := new(MockTeamRepository)
		service := NewTeamService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByID", mock.Anything, "t1").
			Return(storedTeam("t1", "backend", []string{"m1"}, []string{"u1"}), nil).Once()

		ok, err := service.IsUserInTeam(ctx, "t1", "u1")

		require.NoError(t, err)
		assert.True(t, ok)
	})
}
