package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/terraincognita07/tracklog/internal/dialogue"
)

const textOnlyNotice = "Only text messages are supported. Send /help for usage."

// messageInput converts an incoming message to a dialogue input. Messages
// without text (stickers, photos) are not dialogue input. Slash text that
// arrives without a bot_command entity is still parsed as a command.
func messageInput(message *tgbotapi.Message) (dialogue.Input, bool) {
	if message.IsCommand() {
		return dialogue.CommandInput(message.Command()), true
	}
	if message.Text == "" {
		return dialogue.Input{}, false
	}
	return dialogue.ParseInput(message.Text), true
}

func buildMessage(chatID int64, reply dialogue.Reply) tgbotapi.MessageConfig {
	message := tgbotapi.NewMessage(chatID, reply.Text)

	switch {
	case len(reply.Choices) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(reply.Choices))
		for _, choices := range reply.Choices {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(choices))
			for _, choice := range choices {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(choice))
			}
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
		}
		keyboard := tgbotapi.NewReplyKeyboard(rows...)
		keyboard.OneTimeKeyboard = true
		keyboard.ResizeKeyboard = true
		message.ReplyMarkup = keyboard
	case reply.HideChoices:
		message.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}

	return message
}
