//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

func TestTeamLifecycle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("полный жизненный цикл команды", func(t *testing.T) {
		team, err := env.teamService.CreateTeam(ctx, "backend", "команда бэкенда", "U_LEAD")
		require.NoError(t, err)
		require.NotEmpty(t, team.ID)
		assert.True(t, team.IsManager("U_LEAD"))
		assert.True(t, team.IsMember("U_LEAD"))

		// Участники присоединяются сами.
		_, err = env.teamService.JoinTeam(ctx, team.ID, "U_ALICE")
		require.NoError(t, err)
		_, err = env.teamService.JoinTeam(ctx, team.ID, "U_BOB")
		require.NoError(t, err)

		// Повторное присоединение ничего не ломает.
		updated, err := env.teamService.JoinTeam(ctx, team.ID, "U_ALICE")
		require.NoError(t, err)
		assert.Len(t, updated.MemberIDs(), 3)

		// Менеджер повышает участника, после чего сам может уйти.
		_, err = env.teamService.PromoteManager(ctx, team.ID, "U_LEAD", "U_ALICE")
		require.NoError(t, err)

		_, err = env.teamService.LeaveTeam(ctx, team.ID, "U_LEAD")
		require.NoError(t, err)

		final, err := env.teamService.GetTeamByID(ctx, team.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"U_ALICE", "U_BOB"}, final.MemberIDs())
		assert.Equal(t, []string{"U_ALICE"}, final.ManagerIDs())
	})

	t.Run("единственный менеджер не может покинуть команду", func(t *testing.T) {
		team, err := env.teamService.CreateTeam(ctx, "frontend", "", "U_SOLO")
		require.NoError(t, err)

		_, err = env.teamService.LeaveTeam(ctx, team.ID, "U_SOLO")
		assert.ErrorIs(t, err, domain.ErrInvalidState)

		// Команда не изменилась.
		got, err := env.teamService.GetTeamByID(ctx, team.ID)
		require.NoError(t, err)
		assert.True(t, got.IsManager("U_SOLO"))
	})

	t.Run("права менеджера проверяются на живом состоянии", func(t *testing.T) {
		team, err := env.teamService.CreateTeam(ctx, "platform", "", "U_MGR")
		require.NoError(t, err)
		_, err = env.teamService.JoinTeam(ctx, team.ID, "U_DEV")
		require.NoError(t, err)

		_, err = env.teamService.AddMember(ctx, team.ID, "U_DEV", "U_NEW")
		assert.ErrorIs(t, err, domain.ErrNotManager)

		_, err = env.teamService.AddMember(ctx, team.ID, "U_MGR", "U_NEW")
		require.NoError(t, err)

		_, err = env.teamService.RemoveMember(ctx, team.ID, "U_MGR", "U_NEW")
		require.NoError(t, err)

		members, err := env.teamService.GetTeamMembers(ctx, team.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"U_MGR", "U_DEV"}, members)
	})

	t.Run("удаление команды чистит индекс", func(t *testing.T) {
		team, err := env.teamService.CreateTeam(ctx, "temp", "", "U_TMP")
		require.NoError(t, err)

		require.NoError(t, env.teamService.DeleteTeam(ctx, team.ID))

		got, err := env.teamService.GetTeamByID(ctx, team.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, got)

		all, err := env.teamService.GetAllTeams(ctx)
		require.NoError(t, err)
		for _, tm := range all {
			assert.NotEqual(t, team.ID, tm.ID)
		}
	})
}

func TestConcurrentJoins(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	team, err := env.teamService.CreateTeam(ctx, "load", "", "U_OWNER")
	require.NoError(t, err)

	users := []string{"U1", "U2", "U3", "U4", "U5", "U6", "U7", "U8"}
	errs := make(chan error, len(users))
	for _, u := range users {
		go func(userID string) {
			_, err := env.teamService.JoinTeam(ctx, team.ID, userID)
			errs <- err
		}(u)
	}
	for range users {
		require.NoError(t, <-errs)
	}

	got, err := env.teamService.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	// Ни одно присоединение не потерялось при конкурентной записи.
	assert.Len(t, got.MemberIDs(), len(users)+1)
}
