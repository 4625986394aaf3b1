package handler

import "github.com/bagdasarian/standup-bot/internal/service"

type Handler struct {
	teamService   service.TeamService
	statusService service.StatusService
}

func NewHandler(
	teamService service.TeamService,
	statusService service.StatusService,
) *Handler {
	return &Handler{
		teamService:   teamService,
		statusService: statusService,
	}
}
