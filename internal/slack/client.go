package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client - минимальный клиент Slack Web API для отправки личных сообщений
type Client struct {
	client   *http.Client
	logger   *zap.Logger
	apiURL   string
	botToken string
}

func NewClient(apiURL, botToken string, logger *zap.Logger) *Client {
	return &Client{
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		apiURL:   apiURL,
		botToken: botToken,
	}
}

// SendMessage отправляет сообщение пользователю через chat.postMessage
func (c *Client) SendMessage(ctx context.Context, userID, text string) error {
	body, err := json.Marshal(map[string]string{
		"channel": userID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack chat.postMessage: status %d", resp.StatusCode)
	}

	// Slack отвечает 200 даже на ошибки, результат лежит в поле ok
	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("slack chat.postMessage: decode: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack chat.postMessage: %s", result.Error)
	}

	c.logger.Debug("message sent", zap.String("user_id", userID))
	return nil
}
