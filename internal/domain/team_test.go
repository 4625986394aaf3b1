package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_AddMember(t *testing.T) {
	t.Run("добавление участника", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddMember("u1")

		assert.True(t, team.IsMember("u1"))
		assert.False(t, team.IsManager("u1"))
	})

	t.Run("повторное добавление идемпотентно", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddMember("u1")
		team.AddMember("u1")

		assert.Len(t, team.Members, 1)
	})
}

func TestTeam_AddManager(t *testing.T) {
	t.Run("менеджер автоматически становится участником", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddManager("u1")

		assert.True(t, team.IsManager("u1"))
		assert.True(t, team.IsMember("u1"))
	})

	t.Run("повторное назначение идемпотентно", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddManager("u1")
		team.AddManager("u1")

		assert.Len(t, team.Managers, 1)
		assert.Len(t, team.Members, 1)
	})
}

func TestTeam_RemoveMember(t *testing.T) {
	t.Run("удаление участника снимает и роль менеджера", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddManager("u1")
		team.RemoveMember("u1")

		assert.False(t, team.IsMember("u1"))
		assert.False(t, team.IsManager("u1"))
	})

	t.Run("удаление отсутствующего участника - no-op", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddMember("u1")
		team.RemoveMember("u2")

		assert.Len(t, team.Members, 1)
	})
}

func TestTeam_RemoveManager(t *testing.T) {
	t.Run("понижение сохраняет участие", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddManager("u1")
		team.RemoveManager("u1")

		assert.False(t, team.IsManager("u1"))
		assert.True(t, team.IsMember("u1"))
	})
}

func TestTeam_IsManager(t *testing.T) {
	t.Run("пустой userID не является менеджером", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddManager("u1")

		assert.False(t, team.IsManager(""))
	})
}

func TestTeam_HasManagers(t *testing.T) {
	team := NewTeam("backend", "")
	assert.False(t, team.HasManagers())

	team.AddManager("u1")
	assert.True(t, team.HasManagers())

	team.RemoveManager("u1")
	assert.False(t, team.HasManagers())
}

func TestTeam_MemberIDs(t *testing.T) {
	t.Run("список отсортирован", func(t *testing.T) {
		team := NewTeam("backend", "")
		team.AddMember("u3")
		team.AddMember("u1")
		team.AddMember("u2")

		assert.Equal(t, []string{"u1", "u2", "u3"}, team.MemberIDs())
	})
}
