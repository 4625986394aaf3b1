package handler

import (
	"fmt"
	"net/http"
	"strings"
)

const teamUsage = "Usage: /team [create|list|join|leave|add|remove|promote|demote|info] [args]"

// TeamCommand обрабатывает slash-команду /team
func (h *Handler) TeamCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond(w, teamUsage)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		respond(w, teamUsage)
		return
	}

	subCommand, subArgs := splitCommand(r.FormValue("text"))

	switch subCommand {
	case "create":
		h.handleCreateTeam(w, r, subArgs, userID)
	case "list":
		h.handleListTeams(w, r, userID)
	case "join":
		h.handleJoinTeam(w, r, subArgs, userID)
	case "leave":
		h.handleLeaveTeam(w, r, subArgs, userID)
	case "add":
		h.handleAddMember(w, r, subArgs, userID)
	case "remove":
		h.handleRemoveMember(w, r, subArgs, userID)
	case "promote":
		h.handlePromoteManager(w, r, subArgs, userID)
	case "demote":
		h.handleDemoteManager(w, r, subArgs, userID)
	case "info":
		h.handleTeamInfo(w, r, subArgs)
	default:
		respond(w, teamUsage)
	}
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request, args, userID string) {
	name, description := splitCommand(args)
	if name == "" {
		respond(w, "Usage: /team create [team_name] [optional_description]")
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), name, description, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Team *%s* created successfully with ID: %s", team.Name, team.ID))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request, userID string) {
	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, formatTeamList(teams, userID))
}

func (h *Handler) handleJoinTeam(w http.ResponseWriter, r *http.Request, teamID, userID string) {
	if teamID == "" {
		respond(w, "Usage: /team join [team_id]")
		return
	}

	team, err := h.teamService.JoinTeam(r.Context(), teamID, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("You have joined team: *%s*", team.Name))
}

func (h *Handler) handleLeaveTeam(w http.ResponseWriter, r *http.Request, teamID, userID string) {
	if teamID == "" {
		respond(w, "Usage: /team leave [team_id]")
		return
	}

	team, err := h.teamService.LeaveTeam(r.Context(), teamID, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("You have left team: *%s*", team.Name))
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request, args, userID string) {
	teamID, memberID := splitCommand(args)
	memberID = stripMention(memberID)
	if teamID == "" || memberID == "" {
		respond(w, "Usage: /team add [team_id] [user_id]")
		return
	}

	team, err := h.teamService.AddMember(r.Context(), teamID, userID, memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Added <@%s> to team: *%s*", memberID, team.Name))
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request, args, userID string) {
	teamID, memberID := splitCommand(args)
	memberID = stripMention(memberID)
	if teamID == "" || memberID == "" {
		respond(w, "Usage: /team remove [team_id] [user_id]")
		return
	}

	team, err := h.teamService.RemoveMember(r.Context(), teamID, userID, memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Removed <@%s> from team: *%s*", memberID, team.Name))
}

func (h *Handler) handlePromoteManager(w http.ResponseWriter, r *http.Request, args, userID string) {
	teamID, memberID := splitCommand(args)
	memberID = stripMention(memberID)
	if teamID == "" || memberID == "" {
		respond(w, "Usage: /team promote [team_id] [user_id]")
		return
	}

	team, err := h.teamService.PromoteManager(r.Context(), teamID, userID, memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Promoted <@%s> to manager of team: *%s*", memberID, team.Name))
}

func (h *Handler) handleDemoteManager(w http.ResponseWriter, r *http.Request, args, userID string) {
	teamID, memberID := splitCommand(args)
	memberID = stripMention(memberID)
	if teamID == "" || memberID == "" {
		respond(w, "Usage: /team demote [team_id] [user_id]")
		return
	}

	team, err := h.teamService.DemoteManager(r.Context(), teamID, userID, memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, fmt.Sprintf("Demoted <@%s> from manager role in team: *%s*", memberID, team.Name))
}

func (h *Handler) handleTeamInfo(w http.ResponseWriter, r *http.Request, teamID string) {
	if teamID == "" {
		respond(w, "Usage: /team info [team_id]")
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond(w, formatTeamInfo(team))
}

// splitCommand отделяет первое слово от остатка строки
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// stripMention превращает "<@U123>" или "<@U123|name>" в "U123"
func stripMention(raw string) string {
	if !strings.HasPrefix(raw, "<@") || !strings.HasSuffix(raw, ">") {
		return raw
	}

	id := strings.TrimSuffix(strings.TrimPrefix(raw, "<@"), ">")
	if i := strings.Index(id, "|"); i >= 0 {
		id = id[:i]
	}
	return id
}
