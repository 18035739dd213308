// Package telegram is the chat transport of the bot. It polls the Bot API,
// turns updates into conversation inputs or order actions, renders replies
// with keyboards and delivers counterparty notifications.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of tgbotapi.BotAPI the adapter uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFileDirectURL(fileID string) (string, error)
}

// NewAPI authorizes the bot token against Telegram.
func NewAPI(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = debug
	return api, nil
}

// SetCommands publishes the slash commands shown in the client menu.
func SetCommands(api API) error {
	_, err := api.Request(tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "cancel", Description: "Cancel the current form"},
		tgbotapi.BotCommand{Command: "help", Description: "How the bot works"},
	))
	return err
}
