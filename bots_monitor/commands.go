package bots_monitor

// Telegram command handler.
// /start registers the chat as the alert destination, /ping answers Pong!,
// /status reports the destination and how many tokens were alerted.

import (
	"context"
	"fmt"

	"memecoin-radar/internal/features/session"
	log "memecoin-radar/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	WelcomeText = "🚀 MemeCoin Bot is live! You'll get *new Solana token alerts* here (Safe ✅ or Risky ❌)."
	PongText    = "Pong!"
)

// Sender is the part of *tgbotapi.BotAPI used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is the part of *tgbotapi.BotAPI used by the command handler.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RunCommandHandler long-polls updates until ctx is cancelled.
func RunCommandHandler(ctx context.Context, bot Bot, sess *session.Session) {
	if bot == nil {
		log.LogWarn("Bot is nil, command handler not started")
		return
	}

	log.LogInfo("Starting command handler")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			log.LogInfo("Command handler stopped")
			return
		case update, ok := <-updates:
			if !ok {
				log.LogWarn("Updates channel closed, command handler stopped")
				return
			}
			HandleUpdate(bot, sess, update)
		}
	}
}

// HandleUpdate answers one update. Non-command messages are ignored.
func HandleUpdate(bot Sender, sess *session.Session, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil || !message.IsCommand() {
		return
	}

	chatID := message.Chat.ID
	command := message.Command()

	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	log.LogDebug("Received command",
		zap.String("command", command),
		zap.Int64("chatID", chatID),
		zap.String("username", username))

	var msg tgbotapi.MessageConfig
	switch command {
	case "start":
		sess.Register(chatID)
		log.LogSuccess("Alert destination registered", zap.Int64("chatID", chatID))
		msg = tgbotapi.NewMessage(chatID, WelcomeText)
	case "ping":
		msg = tgbotapi.NewMessage(chatID, PongText)
	case "status":
		msg = tgbotapi.NewMessage(chatID, formatStatus(sess))
	default:
		return
	}

	if _, err := bot.Send(msg); err != nil {
		log.LogError("Failed to reply to command",
			zap.String("command", command),
			zap.Int64("chatID", chatID),
			zap.Error(err))
	}
}

func formatStatus(sess *session.Session) string {
	destination := "not registered, send /start"
	if chatID, ok := sess.Destination(); ok {
		destination = fmt.Sprintf("%d", chatID)
	}
	return fmt.Sprintf("Destination: %s\nAlerted tokens: %d", destination, sess.Seen().Len())
}
