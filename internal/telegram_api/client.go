package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// BotClient wraps the Telegram Bot API client.
type BotClient struct {
	api   *tgbotapi.BotAPI
	Debug bool
}

// Client is the package-level bot instance, set by InitBot.
var Client *BotClient

// InitBot initializes the Telegram bot.
// token is the bot's API token, debug enables API tracing, botUsername is
// used for link generation and startup logging.
func InitBot(token string, debug bool, botUsername string) error {
	if token == "" {
		return fmt.Errorf("no Telegram API token provided")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram Bot API: %w", err)
	}

	api.Debug = debug
	log.Printf("Authorized as bot account %s", api.Self.UserName)

	// Disable any active webhook; long polling and webhooks are mutually
	// exclusive on the Telegram side.
	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}
	if _, err = api.Request(deleteWebhookConfig); err != nil {
		log.Printf("Warning while removing webhook: %v. This is fine if no webhook was set.", err)
	}

	Client = &BotClient{api: api, Debug: debug}
	return nil
}

// GetAPI returns the underlying *tgbotapi.BotAPI instance.
func (bc *BotClient) GetAPI() *tgbotapi.BotAPI {
	if bc == nil || bc.api == nil {
		log.Fatal("BotClient or its API is not initialized.")
	}
	return bc.api
}

// Send proxies to the underlying API's Send.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return bc.GetAPI().Send(c)
}

// Request proxies to the underlying API's Request.
func (bc *BotClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return bc.GetAPI().Request(c)
}
