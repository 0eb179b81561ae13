package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/lingoladder/internal/excel"
	"github.com/example/lingoladder/internal/gamification"
	"github.com/example/lingoladder/internal/progression"
	"github.com/example/lingoladder/internal/session"
	"github.com/example/lingoladder/internal/similarity"
	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/example/lingoladder/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const callbackLanguagePrefix = "lang:"

const helpText = `Available commands:
/levels - show your levels
/practice N - study the words of level N
/test N - take the test for level N
/review - go over words you missed
/mastered - drop the current review word from your queue
/stats - your progress, XP and badges
/remind - check now for words due for review
/export - download the vocabulary as a spreadsheet
/language BASE TARGET - choose what to learn, e.g. /language en es
/say TEXT - how to say TEXT in your target language ("/say TEXT = ATTEMPT" checks your try)
/cancel - stop the current test or review`

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	var err error
	switch message.Command() {
	case "start":
		err = b.handleStart(ctx, message)
	case "help":
		b.reply(message.Chat.ID, helpText)
	case "language":
		err = b.handleLanguage(ctx, message)
	case "levels":
		err = b.handleLevels(ctx, message)
	case "practice":
		err = b.handlePractice(ctx, message)
	case "test":
		err = b.handleTest(ctx, message)
	case "review":
		err = b.handleReview(ctx, message)
	case "mastered":
		err = b.handleMastered(ctx, message)
	case "stats":
		err = b.handleStats(ctx, message)
	case "say":
		err = b.handleSay(ctx, message)
	case "remind":
		err = b.handleRemind(ctx, message)
	case "export":
		err = b.handleExport(message)
	case "cancel":
		b.setConversation(message.From.ID, nil)
		b.reply(message.Chat.ID, "Cancelled.")
	default:
		b.reply(message.Chat.ID, "Unknown command. Send /help to see what I can do.")
	}
	return err
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.From == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}

	user := models.User{
		ID:        message.From.ID,
		Username:  message.From.UserName,
		FirstName: message.From.FirstName,
	}
	if err := b.users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	key := s.Key()

	text := fmt.Sprintf("Hello, %s! You are learning %s from %s.\n\n%s",
		message.From.FirstName, vocabulary.Label(key.Target), vocabulary.Label(key.Base), helpText)
	b.reply(message.Chat.ID, text)
	return nil
}

func (b *Bot) handleLanguage(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		return b.sendLanguageMenu(ctx, message.Chat.ID, message.From.ID)
	}
	if len(args) != 2 {
		b.reply(message.Chat.ID, "Usage: /language BASE TARGET, e.g. /language en es")
		return nil
	}
	return b.switchPair(ctx, message.Chat.ID, message.From.ID, models.LanguagePair{
		Base:   strings.ToLower(args[0]),
		Target: strings.ToLower(args[1]),
	})
}

func (b *Bot) sendLanguageMenu(ctx context.Context, chatID, userID int64) error {
	s, err := b.sessions.Current(ctx, userID)
	if err != nil {
		return err
	}
	base := s.Key().Base

	var rows [][]MenuButton
	var row []MenuButton
	for _, lang := range b.sessions.Table().Languages() {
		if lang.Code == base {
			continue
		}
		row = append(row, MenuButton{Text: lang.Label, CallbackData: callbackLanguagePrefix + lang.Code})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Which language do you want to learn from %s?", vocabulary.Label(base)))
	msg.ReplyMarkup = createKeyboard(rows)
	b.send(msg)
	return nil
}

// HandleCallback handles inline keyboard presses.
func (b *Bot) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn("failed to answer callback", zap.Error(err))
	}
	if query.Message == nil {
		return nil
	}

	target, ok := strings.CutPrefix(query.Data, callbackLanguagePrefix)
	if !ok {
		return nil
	}
	s, err := b.sessions.Current(ctx, query.From.ID)
	if err != nil {
		return err
	}
	return b.switchPair(ctx, query.Message.Chat.ID, query.From.ID, models.LanguagePair{Base: s.Key().Base, Target: target})
}

func (b *Bot) switchPair(ctx context.Context, chatID, userID int64, pair models.LanguagePair) error {
	table := b.sessions.Table()
	for _, code := range []string{pair.Base, pair.Target} {
		if !table.Has(code) {
			b.reply(chatID, fmt.Sprintf("Sorry, %q is not a language I know.", code))
			return nil
		}
	}

	if _, err := b.sessions.SwitchPair(ctx, userID, pair); err != nil {
		if errors.Is(err, session.ErrInvalidPair) {
			b.reply(chatID, "Pick two different languages.")
			return nil
		}
		return err
	}
	b.setConversation(userID, nil)
	b.reply(chatID, fmt.Sprintf("Now learning %s from %s. Send /levels to begin.",
		vocabulary.Label(pair.Target), vocabulary.Label(pair.Base)))
	return nil
}

func (b *Bot) handleLevels(ctx context.Context, message *tgbotapi.Message) error {
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	levels, err := s.Levels(ctx)
	if err != nil {
		return err
	}
	next, err := s.NextAvailableLevel(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("Your levels:\n")
	for _, l := range levels {
		sb.WriteString(fmt.Sprintf("%s Level %d (%d words)", levelIcon(l, next), l.LevelNumber, len(l.Words)))
		if l.TestScore != nil {
			sb.WriteString(fmt.Sprintf(" - last test %d%%", l.TestScore.Score))
		}
		sb.WriteString("\n")
	}
	b.reply(message.Chat.ID, sb.String())
	return nil
}

func levelIcon(l models.Level, next int) string {
	switch {
	case l.Passed():
		return "✅"
	case l.LevelNumber > next:
		return "🔒"
	case l.TestScore != nil:
		return "❌"
	case l.PracticeComplete:
		return "📝"
	default:
		return "▶️"
	}
}

func (b *Bot) handlePractice(ctx context.Context, message *tgbotapi.Message) error {
	s, n, ok, err := b.levelArgument(ctx, message, "/practice")
	if err != nil || !ok {
		return err
	}

	unlocked, err := s.IsUnlocked(ctx, n)
	if err != nil {
		return err
	}
	if !unlocked {
		b.reply(message.Chat.ID, fmt.Sprintf("Level %d is locked. Pass the earlier levels first.", n))
		return nil
	}

	level, found, err := s.Level(ctx, n)
	if err != nil {
		return err
	}
	if !found {
		b.reply(message.Chat.ID, fmt.Sprintf("There is no level %d.", n))
		return nil
	}
	if _, err := s.BeginPractice(ctx, n); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Level %d words:\n", n))
	for _, w := range level.Words {
		sb.WriteString(fmt.Sprintf("• %s - %s\n", w.Word, w.Translation))
	}
	sb.WriteString(fmt.Sprintf("\nWhen you are ready, send /test %d.", n))
	b.reply(message.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleTest(ctx context.Context, message *tgbotapi.Message) error {
	s, n, ok, err := b.levelArgument(ctx, message, "/test")
	if err != nil || !ok {
		return err
	}

	if err := s.CanAttemptTest(ctx, n); err != nil {
		switch {
		case errors.Is(err, progression.ErrLevelNotFound):
			b.reply(message.Chat.ID, fmt.Sprintf("There is no level %d.", n))
		case errors.Is(err, progression.ErrLevelLocked):
			b.reply(message.Chat.ID, fmt.Sprintf("Level %d is locked. Pass the earlier levels first.", n))
		case errors.Is(err, progression.ErrPracticeRequired):
			b.reply(message.Chat.ID, fmt.Sprintf("Practice first: /practice %d", n))
		default:
			return err
		}
		return nil
	}

	level, _, err := s.Level(ctx, n)
	if err != nil {
		return err
	}
	if len(level.Words) == 0 {
		b.reply(message.Chat.ID, fmt.Sprintf("Level %d has no words.", n))
		return nil
	}

	conv := newTest(n, level.Words)
	b.setConversation(message.From.ID, conv)
	b.reply(message.Chat.ID, fmt.Sprintf("Test for level %d: %d words. Type the %s word for each prompt.",
		n, len(level.Words), vocabulary.Label(s.Key().Target)))
	b.promptTest(message.Chat.ID, conv)
	return nil
}

func (b *Bot) promptTest(chatID int64, conv *conversation) {
	w := conv.currentWord()
	b.reply(chatID, fmt.Sprintf("(%d/%d) %s", conv.Step+1, len(conv.Words), w.Translation))
}

func (b *Bot) answerTest(ctx context.Context, message *tgbotapi.Message, conv *conversation) error {
	w := conv.currentWord()
	attempt := strings.TrimSpace(message.Text)
	score := similarity.Score(w.Word, attempt)

	reply := fmt.Sprintf("%s (%d%%)", similarity.Feedback(score), score)
	if !similarity.Passed(score) {
		reply += "\nCorrect answer: " + w.Word + "\n" + similarity.Explain(w.Word, attempt, w.Translation)
	}
	b.reply(message.Chat.ID, reply)

	conv.Answers = append(conv.Answers, models.ItemResult{
		Word:        w.Word,
		Translation: w.Translation,
		SourceIndex: w.SourceIndex,
		Attempt:     attempt,
	})
	conv.Step++
	if !conv.done() {
		b.promptTest(message.Chat.ID, conv)
		return nil
	}

	b.setConversation(message.From.ID, nil)
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	outcome, err := s.SubmitTest(ctx, conv.Level, conv.Answers)
	if err != nil {
		return err
	}
	b.reply(message.Chat.ID, formatOutcome(outcome))
	return nil
}

func formatOutcome(o models.TestOutcome) string {
	var sb strings.Builder
	if o.Passed {
		sb.WriteString(fmt.Sprintf("Level %d passed with %d%%!", o.LevelNumber, o.Score))
	} else {
		sb.WriteString(fmt.Sprintf("Level %d: %d%%. You need %d%% to pass.", o.LevelNumber, o.Score, similarity.PassThreshold))
	}

	missed := 0
	for _, it := range o.Items {
		if !similarity.Passed(it.Score) {
			missed++
		}
	}
	if missed > 0 {
		sb.WriteString(fmt.Sprintf("\n%d missed words were added to your review queue.", missed))
	}
	if o.Passed && o.Unlocked > o.LevelNumber {
		sb.WriteString(fmt.Sprintf("\nLevel %d is now open.", o.Unlocked))
	}
	for _, badge := range o.Badges {
		sb.WriteString("\n🏅 New badge: " + gamification.BadgeTitle(badge))
	}
	return sb.String()
}

func (b *Bot) handleReview(ctx context.Context, message *tgbotapi.Message) error {
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	due, err := s.DueReviews(ctx, b.config.ReviewLimit)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		b.reply(message.Chat.ID, "Nothing to review right now. 🎉")
		return nil
	}

	conv := newReview(due)
	b.setConversation(message.From.ID, conv)
	b.promptReview(message.Chat.ID, conv)
	return nil
}

func (b *Bot) promptReview(chatID int64, conv *conversation) {
	e := conv.currentReview()
	b.reply(chatID, fmt.Sprintf("Review (%d/%d): %s", conv.Step+1, len(conv.Reviews), e.Translation))
}

func (b *Bot) answerReview(ctx context.Context, message *tgbotapi.Message, conv *conversation) error {
	e := conv.currentReview()
	attempt := strings.TrimSpace(message.Text)
	score := similarity.Score(e.Word, attempt)

	if similarity.Passed(score) {
		s, err := b.sessions.Current(ctx, message.From.ID)
		if err != nil {
			return err
		}
		if _, err := s.AcknowledgeReview(ctx, e.Key()); err != nil {
			return err
		}
		b.reply(message.Chat.ID, fmt.Sprintf("%s (%d%%)", similarity.Feedback(score), score))
	} else {
		b.reply(message.Chat.ID, fmt.Sprintf("Not quite. It is %q.", e.Word))
	}

	conv.Step++
	if conv.done() {
		b.setConversation(message.From.ID, nil)
		b.reply(message.Chat.ID, "Review finished.")
		return nil
	}
	b.promptReview(message.Chat.ID, conv)
	return nil
}

func (b *Bot) handleMastered(ctx context.Context, message *tgbotapi.Message) error {
	conv := b.conversation(message.From.ID)
	if conv == nil || conv.Action != actionReview || conv.done() {
		b.reply(message.Chat.ID, "Start a /review first.")
		return nil
	}

	e := conv.currentReview()
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	if _, err := s.DismissReview(ctx, e.Key()); err != nil {
		return err
	}
	b.reply(message.Chat.ID, fmt.Sprintf("%q removed from your review queue.", e.Word))

	conv.Step++
	if conv.done() {
		b.setConversation(message.From.ID, nil)
		b.reply(message.Chat.ID, "Review finished.")
		return nil
	}
	b.promptReview(message.Chat.ID, conv)
	return nil
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	g, err := s.Gamification(ctx)
	if err != nil {
		return err
	}
	trouble, err := s.TroubleWords(ctx)
	if err != nil {
		return err
	}
	key := s.Key()
	due, err := b.sessions.CountDue(ctx, key)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 %s from %s\n", vocabulary.Label(key.Target), vocabulary.Label(key.Base)))
	sb.WriteString(fmt.Sprintf("Levels passed: %d/%d (%d%%)\n", stats.Completed, stats.TotalLevels, stats.ProgressPercent))
	sb.WriteString(fmt.Sprintf("Highest level: %d\n", stats.Level))
	sb.WriteString(fmt.Sprintf("Words to review: %d (%d due now)\n", len(trouble), due))
	sb.WriteString(fmt.Sprintf("XP: %d\nDaily streak: %d\n", g.XP, g.DailyStreak))
	if len(g.Badges) > 0 {
		titles := make([]string, len(g.Badges))
		for i, badge := range g.Badges {
			titles[i] = gamification.BadgeTitle(badge)
		}
		sb.WriteString("Badges: " + strings.Join(titles, ", "))
	}
	b.reply(message.Chat.ID, sb.String())
	return nil
}

func (b *Bot) handleRemind(ctx context.Context, message *tgbotapi.Message) error {
	if b.reminders == nil {
		b.reply(message.Chat.ID, "Reminders are not enabled.")
		return nil
	}
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	// a reminder message is sent by the scheduler when anything is due
	count, err := b.reminders.RunManualCheck(ctx, s.Key())
	if err != nil {
		return err
	}
	if count == 0 {
		b.reply(message.Chat.ID, "Nothing is due right now. 🎉")
	}
	return nil
}

func (b *Bot) handleExport(message *tgbotapi.Message) error {
	dir, err := os.MkdirTemp("", "lingoladder-export")
	if err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "vocabulary.xlsx")
	if err := excel.Export(b.sessions.Table(), path); err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FilePath(path))
	doc.Caption = "Vocabulary, one column per language."
	b.send(doc)
	return nil
}

func (b *Bot) handleSay(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		b.reply(message.Chat.ID, "Usage: /say TEXT or /say TEXT = YOUR ATTEMPT")
		return nil
	}

	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return err
	}
	pair := s.Key().LanguagePair

	text, attempt, hasAttempt := strings.Cut(args, "=")
	text = strings.TrimSpace(text)
	if !hasAttempt {
		res := b.translator.Translate(ctx, text, pair)
		if !res.Found() {
			b.reply(message.Chat.ID, "Sorry, I could not translate that.")
			return nil
		}
		b.reply(message.Chat.ID, formatTranslation(text, res.Text, string(res.Source)))
		return nil
	}

	check := b.translator.Check(ctx, text, strings.TrimSpace(attempt), pair)
	if !check.Found() {
		b.reply(message.Chat.ID, "Sorry, I could not translate that.")
		return nil
	}
	b.reply(message.Chat.ID, fmt.Sprintf("%s\n%s (%d%%)",
		formatTranslation(text, check.Text, string(check.Source)), check.Feedback, check.Score))
	return nil
}

func formatTranslation(text, translated, source string) string {
	out := fmt.Sprintf("%s → %s", text, translated)
	if source != "online" {
		out += " (" + source + ")"
	}
	return out
}

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) error {
	conv := b.conversation(message.From.ID)
	if conv == nil || conv.done() {
		b.reply(message.Chat.ID, "Send /help to see what I can do.")
		return nil
	}
	switch conv.Action {
	case actionTest:
		return b.answerTest(ctx, message, conv)
	case actionReview:
		return b.answerReview(ctx, message, conv)
	}
	return nil
}

// levelArgument parses the level number after a command and opens the
// user's current session. ok is false when a usage reply was sent instead.
func (b *Bot) levelArgument(ctx context.Context, message *tgbotapi.Message, command string) (*session.Session, int, bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil || n < 1 {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: %s N, e.g. %s 1", command, command))
		return nil, 0, false, nil
	}
	s, err := b.sessions.Current(ctx, message.From.ID)
	if err != nil {
		return nil, 0, false, err
	}
	return s, n, true, nil
}
