package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

const statusUsage = "Usage: /status set [availability] | [tasks] | [notes], /status team [team_id] [date], /status view [user_id] [date]"

// StatusCommand обрабатывает slash-команду /status
func (h *Handler) StatusCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond(w, statusUsage)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		respond(w, statusUsage)
		return
	}

	subCommand, subArgs := splitCommand(r.FormValue("text"))

	switch subCommand {
	case "set":
		h.handleSetStatus(w, r, subArgs, userID)
	case "team":
		h.handleTeamStatuses(w, r, subArgs)
	case "view":
		h.handleViewStatus(w, r, subArgs, userID)
	default:
		respond(w, statusUsage)
	}
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request, args, userID string) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		respond(w, "Usage: /status set [availability] | [tasks] | [optional notes]")
		return
	}

	status := &domain.DailyStatus{
		DeveloperID:  userID,
		Date:         time.Now().Format("2006-01-02"),
		Availability: strings.TrimSpace(parts[0]),
		Tasks:        strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		status.Notes = strings.TrimSpace(parts[2])
	}

	if err := h.statusService.AddDailyStatus(r.Context(), status); err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Status for %s saved.", status.Date))
}

func (h *Handler) handleTeamStatuses(w http.ResponseWriter, r *http.Request, args string) {
	teamID, date := splitCommand(args)
	if teamID == "" {
		respond(w, "Usage: /status team [team_id] [optional date YYYY-MM-DD]")
		return
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	statuses, err := h.statusService.GetTeamDailyStatuses(r.Context(), date, teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, formatStatuses(statuses))
}

func (h *Handler) handleViewStatus(w http.ResponseWriter, r *http.Request, args, viewerID string) {
	target, date := splitCommand(args)
	target = stripMention(target)
	if target == "" {
		respond(w, "Usage: /status view [user_id] [optional date YYYY-MM-DD]")
		return
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	allowed, err := h.statusService.HasViewPermission(r.Context(), viewerID, target)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if !allowed {
		respond(w, "You do not have permission to view this user's status.")
		return
	}

	statuses, err := h.statusService.GetDailyStatuses(r.Context(), date)
	if err != nil {
		h.handleError(w, err)
		return
	}

	for _, status := range statuses {
		if status.DeveloperID == target {
			respond(w, formatStatuses([]*domain.DailyStatus{status}))
			return
		}
	}

	respond(w, fmt.Sprintf("<@%s> has not submitted a status for %s.", target, date))
}
