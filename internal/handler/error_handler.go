package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

// respond отправляет ответ slash-команды. Slack требует HTTP 200
// даже для ошибочных исходов, текст ошибки уходит в теле.
func respond(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SlashResponse{
		ResponseType: ResponseEphemeral,
		Text:         text,
	})
}

// handleError превращает ошибку в текст для пользователя.
// Ожидаемые исходы (NOT_FOUND, INVALID_STATE, NOT_MANAGER, CONFLICT)
// показываются как есть, инфраструктурные сбои - обобщенным сообщением.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case "NOT_FOUND", "INVALID_STATE", "NOT_MANAGER", "BAD_REQUEST":
			respond(w, domainErr.Message)
			return
		case "CONFLICT":
			respond(w, "Another change happened at the same time, please try again.")
			return
		}
	}

	respond(w, "Something went wrong, please try again later.")
}
