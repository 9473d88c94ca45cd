package models

import "time"

// ChatSender identifies who authored a transcript line.
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessage is one line of the assistant transcript.
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
	SentAt time.Time  `json:"sent_at"`
}

// ChatKeyword maps a lowercase keyword to its canned reply.
type ChatKeyword struct {
	Keyword  string `yaml:"keyword"`
	Response string `yaml:"response"`
}

// ChatScript holds every canned string the assistant can answer with.
type ChatScript struct {
	Greeting string          `yaml:"greeting"`
	Keywords []ChatKeyword   `yaml:"keywords"`
	Context  map[View]string `yaml:"context"`
	Generic  []string        `yaml:"generic"`
}
