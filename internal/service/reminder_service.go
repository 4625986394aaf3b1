package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier отправляет личное сообщение пользователю чат-платформы
type Notifier interface {
	SendMessage(ctx context.Context, userID, text string) error
}

// RosterSource поставляет список получателей напоминаний.
// Список перечитывается перед каждой рассылкой.
type RosterSource interface {
	Roster(ctx context.Context) ([]string, error)
}

type ReminderService interface {
	SendDailyReminders(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

const reminderText = "Good morning! Please set your daily status with /status set."

type reminderService struct {
	notifier Notifier
	roster   RosterSource
	logger   *zap.Logger
}

// NewReminderService создает новый экземпляр ReminderService
func NewReminderService(notifier Notifier, roster RosterSource, logger *zap.Logger) ReminderService {
	return &reminderService{
		notifier: notifier,
		roster:   roster,
		logger:   logger,
	}
}

// SendDailyReminders рассылает напоминания по текущему списку получателей.
// Рассылка best-effort: сбой отправки одному пользователю логируется,
// остальные получатели обрабатываются дальше.
func (s *reminderService) SendDailyReminders(ctx context.Context) error {
	recipients, err := s.roster.Roster(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, userID := range recipients {
		if err := s.notifier.SendMessage(ctx, userID, reminderText); err != nil {
			failed++
			s.logger.Error("failed to send reminder",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	s.logger.Info("daily reminders sent",
		zap.Int("recipients", len(recipients)),
		zap.Int("failed", failed))
	return nil
}

// Run запускает периодическую рассылку до отмены контекста
func (s *reminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SendDailyReminders(ctx); err != nil {
				s.logger.Error("reminder broadcast failed", zap.Error(err))
			}
		}
	}
}
