package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback identifiers shared with the bot dispatch.
const (
	CallbackRecordVitals = "record_vitals"
	CallbackInsights     = "insights"
	CallbackMainMenu     = "main_menu"
)

// MainMenu creates the main menu keyboard.
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Record vitals", CallbackRecordVitals),
			tgbotapi.NewInlineKeyboardButtonData("📈 7-day insights", CallbackInsights),
		),
	)
}

// BackToMenu creates a single back-navigation row.
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}
