package mock_bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MockBot struct {
	mu           sync.Mutex
	SentMessages []tgbotapi.Chattable
	Requests     []tgbotapi.Chattable
	Err          error
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return tgbotapi.Message{}, m.Err
	}
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 123}}, nil
}

func (m *MockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// Texts returns the text of every sent message, in order.
func (m *MockBot) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.SentMessages {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

// Last returns the text of the most recent message.
func (m *MockBot) Last() string {
	texts := m.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func ClearSentMessages(bot *MockBot) {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	bot.SentMessages = nil
}
