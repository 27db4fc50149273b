package command

import (
	"context"
	"errors"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"sync"
	"time"
)

type MockTextSender struct {
	mu       sync.Mutex
	err      error
	Messages []string
	ReplyTo  []int
	Actions  []domain.Action
}

func (m *MockTextSender) SendMessageReply(_ context.Context, message *domain.Message, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Messages = append(m.Messages, text)
	m.ReplyTo = append(m.ReplyTo, message.ID)
	return len(m.Messages), m.err
}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Messages = append(m.Messages, err.Error())
	if m.err != nil {
		return m.err
	}
	return err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, action domain.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Actions = append(m.Actions, action)
}

func (m *MockTextSender) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.Messages...)
}

func (m *MockTextSender) Last() string {
	sent := m.Sent()
	if len(sent) == 0 {
		return ""
	}
	return sent[len(sent)-1]
}

type MockTextGenerator struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (m *MockTextGenerator) GenerateFromPrompt(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.response, m.err
}

type MockTranscriber struct {
	response string
	err      error
	url      string
}

func (m *MockTranscriber) GenerateFromAudio(_ context.Context, url string) (string, error) {
	m.url = url
	return m.response, m.err
}

type MockImageGenerator struct {
	image []byte
	err   error
	calls int
}

func (m *MockImageGenerator) GenerateFromPrompt(_ context.Context, _ string) ([]byte, error) {
	m.calls++
	return m.image, m.err
}

type MockImageSender struct {
	err  error
	sent []byte
}

func (m *MockImageSender) SendImageFileReply(_ context.Context, _ *domain.Message, file []byte) error {
	m.sent = file
	return m.err
}

type MockAudioSender struct {
	err  error
	sent []byte
}

func (m *MockAudioSender) SendAudioFileReply(_ context.Context, _ *domain.Message, file []byte) error {
	m.sent = file
	return m.err
}

type MockSynthesizer struct {
	path string
	err  error
}

func (m *MockSynthesizer) SynthesizeToFile(_ context.Context, _ string) (string, error) {
	return m.path, m.err
}

type MockMenuSender struct {
	err      error
	text     string
	buttons  []domain.MenuButton
	answered []string
}

func (m *MockMenuSender) SendMenu(_ context.Context, _ *domain.Message, text string,
	buttons []domain.MenuButton) error {
	m.text = text
	m.buttons = buttons
	return m.err
}

func (m *MockMenuSender) AnswerCallback(_ context.Context, callbackID string) error {
	m.answered = append(m.answered, callbackID)
	return m.err
}

type MockWeatherProvider struct {
	weather domain.Weather
	err     error
	city    string
}

func (m *MockWeatherProvider) Current(_ context.Context, city string) (domain.Weather, error) {
	m.city = city
	return m.weather, m.err
}

type MockNewsProvider struct {
	headlines []domain.Headline
	err       error
}

func (m *MockNewsProvider) TopHeadlines(_ context.Context) ([]domain.Headline, error) {
	return m.headlines, m.err
}

type MockTriviaProvider struct {
	question domain.TriviaQuestion
	err      error
}

func (m *MockTriviaProvider) Question(_ context.Context) (domain.TriviaQuestion, error) {
	return m.question, m.err
}

type MockFactProvider struct {
	fact string
	err  error
}

func (m *MockFactProvider) RandomFact(_ context.Context) (string, error) {
	return m.fact, m.err
}

type MockQuoteProvider struct {
	quote    domain.Quote
	err      error
	symbol   string
	currency string
}

func (m *MockQuoteProvider) Price(_ context.Context, symbol, currency string) (domain.Quote, error) {
	m.symbol = symbol
	m.currency = currency
	return m.quote, m.err
}

type MockScheduler struct {
	tasks []domain.ReminderTask
	err   error
}

func (m *MockScheduler) Schedule(task domain.ReminderTask, _ port.DeliverFunc) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.tasks = append(m.tasks, task)
	return "id", nil
}

func (m *MockScheduler) Cancel(_ string) bool { return false }

func (m *MockScheduler) Pending() int { return len(m.tasks) }

type MockGreetings struct {
	marked []int64
}

func (m *MockGreetings) ShouldGreet(_ int64) bool { return false }

func (m *MockGreetings) MarkGreeted(userID int64) {
	m.marked = append(m.marked, userID)
}

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *domain.Message) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

type MockTempStore struct {
	data    map[string][]byte
	removed []string
}

func (m *MockTempStore) Save(data []byte, extension string) (string, error) {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	path := "/tmp/speech" + extension
	m.data[path] = data
	return path, nil
}

func (m *MockTempStore) Read(path string) ([]byte, error) {
	data, ok := m.data[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func (m *MockTempStore) Remove(path string) {
	m.removed = append(m.removed, path)
	delete(m.data, path)
}
