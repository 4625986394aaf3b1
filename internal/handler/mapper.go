package handler

import (
	"fmt"
	"strings"

	"github.com/bagdasarian/standup-bot/internal/domain"
)

func formatTeamList(teams []*domain.Team, userID string) string {
	if len(teams) == 0 {
		return "No teams found."
	}

	var sb strings.Builder
	sb.WriteString("*Available Teams:*\n")
	for _, team := range teams {
		fmt.Fprintf(&sb, "• *%s* (ID: %s)", team.Name, team.ID)
		if team.IsMember(userID) {
			sb.WriteString(" - You are a member")
		}
		if team.IsManager(userID) {
			sb.WriteString(" - You are a manager")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTeamInfo(team *domain.Team) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Team:* %s\n", team.Name)
	fmt.Fprintf(&sb, "*ID:* %s\n", team.ID)
	if team.Description != "" {
		fmt.Fprintf(&sb, "*Description:* %s\n", team.Description)
	}

	sb.WriteString("*Members:* ")
	sb.WriteString(formatMentions(team.MemberIDs()))
	sb.WriteString("\n*Managers:* ")
	sb.WriteString(formatMentions(team.ManagerIDs()))
	return sb.String()
}

func formatStatuses(statuses []*domain.DailyStatus) string {
	if len(statuses) == 0 {
		return "No statuses submitted for this date."
	}

	var sb strings.Builder
	sb.WriteString("*Daily Statuses:*\n")
	for _, status := range statuses {
		fmt.Fprintf(&sb, "<@%s> — %s\n", status.DeveloperID, status.Availability)
		fmt.Fprintf(&sb, "    Tasks: %s\n", status.Tasks)
		if status.Notes != "" {
			fmt.Fprintf(&sb, "    Notes: %s\n", status.Notes)
		}
	}
	return sb.String()
}

func formatMentions(userIDs []string) string {
	if len(userIDs) == 0 {
		return "none"
	}

	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, ", ")
}
