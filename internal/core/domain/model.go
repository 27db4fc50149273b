package domain

import "time"

type Message struct {
	ID               int
	ChatID           int64
	UserID           int64
	Username         string
	ReplyToMessageID *int
	ReplyToUsername  string
	IsReplyToBot     bool
	QuotedText       string
	AudioURL         string
	Text             string
}

// Action values are passed to Telegram as chat actions verbatim.
type Action string

const (
	Typing         Action = "typing"
	UploadingPhoto Action = "upload_photo"
	UploadingVoice Action = "upload_voice"
)

type MenuButton struct {
	Label string
	Data  string
}

type TriviaQuestion struct {
	Question string
	Options  []string
	Correct  string
}

type Weather struct {
	City         string
	Description  string
	TemperatureC float64
}

type Headline struct {
	Title  string
	Source string
}

type Quote struct {
	Symbol   string
	Currency string
	Price    float64
}

type ReminderTask struct {
	ID        string
	ChatID    int64
	MessageID int
	UserID    int64
	Message   string
	Delay     time.Duration
	CreatedAt time.Time
	FireAt    time.Time
}
