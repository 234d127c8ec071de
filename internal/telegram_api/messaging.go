package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendTextMessage sends a plain-text message to a chat.
func SendTextMessage(botClient *BotClient, chatID int64, text string) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		log.Println("SendTextMessage: BotClient is not initialized.")
		return tgbotapi.Message{}, fmt.Errorf("BotClient is not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := botClient.Send(msg)
	if err != nil {
		log.Printf("SendTextMessage: failed to send message to chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return sent, nil
}

// SendMarkdownMessage sends a Markdown-formatted message to a chat.
func SendMarkdownMessage(botClient *BotClient, chatID int64, text string) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		log.Println("SendMarkdownMessage: BotClient is not initialized.")
		return tgbotapi.Message{}, fmt.Errorf("BotClient is not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := botClient.Send(msg)
	if err != nil {
		// Markdown parse failures are common with user-supplied text; retry
		// without formatting rather than dropping the message.
		log.Printf("SendMarkdownMessage: markdown send failed for chatID %d (%v), retrying as plain text", chatID, err)
		return SendTextMessage(botClient, chatID, text)
	}
	return sent, nil
}
