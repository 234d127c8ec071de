package handlers

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"paytrack/internal/config"
	"paytrack/internal/session"
	"paytrack/internal/telegram_api"
)

// HandlerDependencies contains everything the bot handlers need.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.SessionManager
}

// BotHandler encapsulates the bot's message handling: command dispatch and
// the per-step intake flows.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler creates a new BotHandler instance.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil {
		log.Fatal("NewBotHandler: missing dependencies; cannot continue.")
	}
	return &BotHandler{Deps: deps}
}

// sendMessage sends a plain-text reply to the chat.
func (bh *BotHandler) sendMessage(chatID int64, text string) {
	if _, err := telegram_api.SendTextMessage(bh.Deps.BotClient, chatID, text); err != nil {
		log.Printf("sendMessage: failed for chatID %d: %v", chatID, err)
	}
}

// sendMarkdown sends a Markdown-formatted reply to the chat.
func (bh *BotHandler) sendMarkdown(chatID int64, text string) {
	if _, err := telegram_api.SendMarkdownMessage(bh.Deps.BotClient, chatID, text); err != nil {
		log.Printf("sendMarkdown: failed for chatID %d: %v", chatID, err)
	}
}

// sendPhoto sends PNG bytes (e.g. a UPI QR) to the chat.
func (bh *BotHandler) sendPhoto(chatID int64, name string, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	if _, err := bh.Deps.BotClient.Send(photo); err != nil {
		log.Printf("sendPhoto: failed for chatID %d: %v", chatID, err)
	}
}
