package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dekut-chatbot/internal/bot"
	"dekut-chatbot/internal/config"
)

// Bot is an optional Telegram front-end: every incoming text message is
// answered through the same inference engine as the web endpoint.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *bot.Engine
	logger *zap.Logger
}

// NewBot creates a new Telegram bot instance. Returns (nil, nil) when the
// bot is disabled in configuration.
func NewBot(cfg *config.Config, engine *bot.Engine, logger *zap.Logger) (*Bot, error) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" {
		logger.Info("Telegram bot is disabled (telegram.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:    botAPI,
		engine: engine,
		logger: logger,
	}, nil
}

// Start begins listening for updates from Telegram.
func (b *Bot) Start(ctx context.Context) error {
	if b == nil {
		return nil // Bot is disabled
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message != nil && update.Message.Text != "" {
				b.handleMessage(update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	reply := b.engine.Respond(msg.Text)

	b.logger.Info("Telegram message handled",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("intent", reply.Intent),
		zap.Float64("confidence", reply.Confidence))

	out := tgbotapi.NewMessage(msg.Chat.ID, reply.Text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("Failed to send Telegram reply", zap.Error(err))
	}
}
