// Package bot is the Telegram front-end: level practice and tests, review
// drills, translation lookups and reminder delivery.
package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/lingoladder/internal/session"
	"github.com/example/lingoladder/internal/translation"
	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of the Telegram API the bot talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Sessions opens learner sessions.
type Sessions interface {
	Current(ctx context.Context, userID int64) (*session.Session, error)
	SwitchPair(ctx context.Context, userID int64, pair models.LanguagePair) (*session.Session, error)
	CountDue(ctx context.Context, key models.SessionKey) (int, error)
	Table() *vocabulary.Table
}

// Users records who talks to the bot.
type Users interface {
	Upsert(ctx context.Context, user models.User) error
}

// Translator answers "how do you say" questions.
type Translator interface {
	Translate(ctx context.Context, text string, pair models.LanguagePair) translation.Result
	Check(ctx context.Context, text, attempt string, pair models.LanguagePair) translation.Check
}

// Reminders sends an on-demand review reminder and reports the due count.
type Reminders interface {
	RunManualCheck(ctx context.Context, key models.SessionKey) (int, error)
}

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot represents the Telegram bot application
type Bot struct {
	api        Sender
	sessions   Sessions
	users      Users
	translator Translator
	reminders  Reminders
	config     BotConfig
	log        *zap.Logger

	mu            sync.Mutex
	conversations map[int64]*conversation
}

// New creates a new bot instance
func New(api Sender, sessions Sessions, users Users, translator Translator, cfg BotConfig, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ReviewLimit <= 0 {
		cfg.ReviewLimit = DefaultConfig().ReviewLimit
	}
	return &Bot{
		api:           api,
		sessions:      sessions,
		users:         users,
		translator:    translator,
		config:        cfg,
		log:           log,
		conversations: make(map[int64]*conversation),
	}
}

// SetReminders enables the /remind command. The reminder scheduler needs the
// bot as its notifier, so it is attached after construction.
func (b *Bot) SetReminders(r Reminders) {
	b.reminders = r
}

// NewTelegramAPI connects to Telegram with token.
func NewTelegramAPI(token string, cfg BotConfig) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// Run long-polls api for updates and handles them one at a time until ctx
// is done.
func (b *Bot) Run(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := api.GetUpdatesChan(u)

	b.log.Info("bot started", zap.String("account", api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			b.log.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate routes one Telegram update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		var err error
		if msg.IsCommand() {
			err = b.HandleCommand(ctx, msg)
		} else {
			err = b.handleText(ctx, msg)
		}
		if err != nil {
			b.log.Error("handle message", zap.Int64("user_id", msg.From.ID), zap.Error(err))
			b.reply(msg.Chat.ID, "Something went wrong. Please try again later.")
		}
	case update.CallbackQuery != nil:
		if err := b.HandleCallback(ctx, update.CallbackQuery); err != nil {
			b.log.Error("handle callback", zap.Int64("user_id", update.CallbackQuery.From.ID), zap.Error(err))
		}
	}
}

// SendReminder implements the scheduler.Notifier interface. In private chats
// the chat ID equals the user ID.
func (b *Bot) SendReminder(_ context.Context, userID int64, pair models.LanguagePair, count int) error {
	noun := "words"
	if count == 1 {
		noun = "word"
	}
	text := fmt.Sprintf("You have %d %s waiting for review in %s. Send /review to start.",
		count, noun, vocabulary.Label(pair.Target))

	if _, err := b.api.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		return fmt.Errorf("send reminder to %d: %w", userID, err)
	}
	b.log.Debug("reminder sent", zap.Int64("user_id", userID), zap.Int("count", count))
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) conversation(userID int64) *conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) setConversation(userID int64, c *conversation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c == nil {
		delete(b.conversations, userID)
		return
	}
	b.conversations[userID] = c
}
