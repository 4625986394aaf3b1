package domain

import "sort"

// Team - команда с участниками и подмножеством менеджеров.
// Инвариант: каждый менеджер обязан быть участником.
type Team struct {
	ID          string
	Name        string
	Description string
	Members     map[string]struct{}
	Managers    map[string]struct{}
}

func NewTeam(name, description string) *Team {
	return &Team{
		Name:        name,
		Description: description,
		Members:     make(map[string]struct{}),
		Managers:    make(map[string]struct{}),
	}
}

// AddMember добавляет участника (идемпотентно)
func (t *Team) AddMember(userID string) {
	if t.Members == nil {
		t.Members = make(map[string]struct{})
	}
	t.Members[userID] = struct{}{}
}

// RemoveMember удаляет участника; статус менеджера снимается вместе с участием
func (t *Team) RemoveMember(userID string) {
	delete(t.Members, userID)
	delete(t.Managers, userID)
}

// AddManager назначает менеджера; менеджер автоматически становится участником
func (t *Team) AddManager(userID string) {
	if t.Managers == nil {
		t.Managers = make(map[string]struct{})
	}
	t.Managers[userID] = struct{}{}
	t.AddMember(userID)
}

// RemoveManager снимает статус менеджера, участие сохраняется
func (t *Team) RemoveManager(userID string) {
	delete(t.Managers, userID)
}

func (t *Team) IsMember(userID string) bool {
	_, ok := t.Members[userID]
	return ok
}

func (t *Team) IsManager(userID string) bool {
	if userID == "" {
		return false
	}
	_, ok := t.Managers[userID]
	return ok
}

func (t *Team) HasManagers() bool {
	return len(t.Managers) > 0
}

// MemberIDs возвращает отсортированный список участников
func (t *Team) MemberIDs() []string {
	ids := make([]string, 0, len(t.Members))
	for id := range t.Members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ManagerIDs возвращает отсортированный список менеджеров
func (t *Team) ManagerIDs() []string {
	ids := make([]string, 0, len(t.Managers))
	for id := range t.Managers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
