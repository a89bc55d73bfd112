package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/theroslabs/vitals-tracker/internal/bot/keyboards"
	"github.com/theroslabs/vitals-tracker/internal/bot/state"
	"github.com/theroslabs/vitals-tracker/internal/logger"
	"github.com/theroslabs/vitals-tracker/internal/services"
	"github.com/theroslabs/vitals-tracker/internal/utils"
)

const insightWindowDays = 7

// Bot is the Telegram front end: records vitals from one-line entries
// and replies with the rolling insight.
type Bot struct {
	api          *tgbotapi.BotAPI
	measurements *services.MeasurementService
	insights     *services.InsightService
	states       state.Manager
}

func NewBot(token string, measurements *services.MeasurementService, insights *services.InsightService, states state.Manager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:          api,
		measurements: measurements,
		insights:     insights,
		states:       states,
	}, nil
}

// Start runs the long-poll update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				logger.Error("Error handling update", "error", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		// Answer the callback to clear the client's loading state.
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := b.api.Request(callback); err != nil {
			logger.Warn("Failed to answer callback query", "error", err)
		}
		return b.handleCallbackQuery(ctx, update.CallbackQuery)
	}

	if update.Message == nil {
		return nil
	}
	if update.Message.IsCommand() {
		return b.handleCommand(ctx, update.Message)
	}
	if update.Message.Text != "" {
		return b.handleText(ctx, update.Message)
	}
	return nil
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	switch query.Data {
	case keyboards.CallbackRecordVitals:
		b.states.SetUserState(userID, state.WaitingForVitals)
		msg := tgbotapi.NewMessage(chatID,
			"Send your vitals as one line, for example:\n"+
				"hr=62 hrv=48.5 rr=14 temp=36.6 spo2=98 slept badly\n\n"+
				"All fields are optional. Add date=YYYY-MM-DD to backfill.")
		msg.ReplyMarkup = keyboards.BackToMenu()
		_, err := b.api.Send(msg)
		return err

	case keyboards.CallbackInsights:
		return b.sendInsights(ctx, chatID)

	case keyboards.CallbackMainMenu:
		b.states.SetUserState(userID, state.None)
		return b.sendMainMenu(chatID)
	}

	return nil
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.states.SetUserState(message.From.ID, state.None)
		return b.sendMainMenu(message.Chat.ID)
	case "insights":
		return b.sendInsights(ctx, message.Chat.ID)
	case "help":
		msg := tgbotapi.NewMessage(message.Chat.ID, `Available commands:
/start - Show the main menu
/insights - 7-day summary and narrative
/help - Show this message

To record vitals, press "📝 Record vitals" and send one line like:
hr=62 hrv=48.5 rr=14 temp=36.6 spo2=98
Unrecognized text in the line is kept as notes.`)
		_, err := b.api.Send(msg)
		return err
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
		_, err := b.api.Send(msg)
		return err
	}
}

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) error {
	if b.states.GetUserState(message.From.ID) != state.WaitingForVitals {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please use the menu to pick an action.")
		msg.ReplyMarkup = keyboards.MainMenu()
		_, err := b.api.Send(msg)
		return err
	}

	input := parseVitalsLine(message.Text)
	if !hasVitals(input) {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			"I didn't find any vitals in that line. Use key=value pairs, e.g. hr=62 spo2=98.")
		_, err := b.api.Send(msg)
		return err
	}

	m, err := b.measurements.Add(ctx, input)
	if err != nil {
		logger.Error("Failed to save measurement", "error", err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "Something went wrong while saving. Please try again.")
		_, sendErr := b.api.Send(msg)
		return sendErr
	}

	b.states.SetUserState(message.From.ID, state.None)
	msg := tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf("✅ Saved entry #%d for %s", m.ID, utils.DateOf(m.MeasuredAt)))
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) sendInsights(ctx context.Context, chatID int64) error {
	out, err := b.insights.Insights(ctx, insightWindowDays)
	if err != nil {
		logger.Error("Failed to compute insights", "error", err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't compute insights right now. Please try again.")
		_, sendErr := b.api.Send(msg)
		return sendErr
	}

	// Prefer the AI narrative, fall back to the deterministic one.
	text := out.Deterministic
	if out.AI != nil {
		text = *out.AI
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📈 Last %d days\n\n%s", insightWindowDays, text))
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) sendMainMenu(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := b.api.Send(msg)
	return err
}
