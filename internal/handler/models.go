package handler

// SlashResponse - ответ на slash-команду в формате Slack
type SlashResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

const (
	// ResponseEphemeral виден только отправителю команды
	ResponseEphemeral = "ephemeral"
	// ResponseInChannel виден всему каналу
	ResponseInChannel = "in_channel"
)
