package telegram

import (
	"PriceTracker/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Sender 消息下发能力，通知器按收件人逐条调用
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type senderImpl struct {
	client  *resty.Client
	baseURL string
}

type sendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewSender(cfg config.TelegramConfig) Sender {
	return &senderImpl{
		client:  resty.New().SetTimeout(10 * time.Second),
		baseURL: fmt.Sprintf("%s/bot%s", cfg.APIURL, cfg.BotToken),
	}
}

// SendMessage 调用 Bot API 下发一条 Markdown 消息
func (s *senderImpl) SendMessage(ctx context.Context, chatID int64, text string) error {
	var result apiResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			ChatID:                chatID,
			Text:                  text,
			ParseMode:             "Markdown",
			DisableWebPagePreview: true,
		}).
		SetResult(&result).
		Post(s.baseURL + "/sendMessage")
	if err != nil {
		return errors.Wrap(err, "send message")
	}

	if resp.StatusCode() != 200 || !result.OK {
		return errors.Errorf("send message to %d: %s", chatID, result.Description)
	}

	return nil
}
