package kvstore

import (
	"encoding/json"
	"errors"

	"github.com/bagdasarian/standup-bot/internal/domain"
	"github.com/bagdasarian/standup-bot/internal/kv"
)

// Схема ключей в хранилище:
//
//	team:<id>                     запись команды
//	all_teams                     индекс всех идентификаторов команд
//	status:<date>:<developerId>   ежедневный статус
//	status_team:<statusKey>       команды, связанные со статусом
const (
	teamKeyPrefix    = "team:"
	allTeamsKey      = "all_teams"
	statusKeyPrefix  = "status:"
	assocKeyPrefix   = "status_team:"
	defaultMaxWrites = 3
)

type teamRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"member_ids"`
	ManagerIDs  []string `json:"manager_ids"`
}

type statusRecord struct {
	DeveloperID  string `json:"developer_id"`
	Date         string `json:"date"`
	Availability string `json:"availability"`
	Tasks        string `json:"tasks"`
	Notes        string `json:"notes,omitempty"`
}

func teamToRecord(team *domain.Team) teamRecord {
	return teamRecord{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		MemberIDs:   team.MemberIDs(),
		ManagerIDs:  team.ManagerIDs(),
	}
}

func recordToTeam(rec teamRecord) *domain.Team {
	team := domain.NewTeam(rec.Name, rec.Description)
	team.ID = rec.ID
	for _, id := range rec.MemberIDs {
		team.AddMember(id)
	}
	for _, id := range rec.ManagerIDs {
		team.AddManager(id)
	}
	return team
}

func statusToRecord(status *domain.DailyStatus) statusRecord {
	return statusRecord{
		DeveloperID:  status.DeveloperID,
		Date:         status.Date,
		Availability: status.Availability,
		Tasks:        status.Tasks,
		Notes:        status.Notes,
	}
}

func recordToStatus(rec statusRecord) *domain.DailyStatus {
	return &domain.DailyStatus{
		DeveloperID:  rec.DeveloperID,
		Date:         rec.Date,
		Availability: rec.Availability,
		Tasks:        rec.Tasks,
		Notes:        rec.Notes,
	}
}

func unmarshalRecord(value []byte, target any) error {
	if err := json.Unmarshal(value, target); err != nil {
		return domain.ErrSerialization
	}
	return nil
}

// translateStoreError переводит ошибки транспорта в доменную таксономию.
// Конфликты версий не переводятся: их разрешает цикл повторов репозитория.
func translateStoreError(err error) error {
	if errors.Is(err, kv.ErrUnavailable) {
		return domain.ErrStoreUnavailable
	}
	return err
}
