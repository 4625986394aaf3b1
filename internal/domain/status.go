package domain

import "fmt"

// DailyStatus - ежедневный статус разработчика.
// Естественный ключ (Date, DeveloperID): один статус на пользователя в день,
// повторная отправка в тот же день перезаписывает предыдущую.
type DailyStatus struct {
	DeveloperID  string
	Date         string // YYYY-MM-DD
	Availability string
	Tasks        string
	Notes        string
}

// Key возвращает составной ключ статуса вида "2024-01-05:u1"
func (s *DailyStatus) Key() string {
	return StatusKey(s.Date, s.DeveloperID)
}

func StatusKey(date, developerID string) string {
	return fmt.Sprintf("%s:%s", date, developerID)
}
