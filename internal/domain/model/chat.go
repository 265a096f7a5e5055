package model

import "strconv"

const (
	ChatPrivate    = "private"
	ChatGroup      = "group"
	ChatSupergroup = "supergroup"
	ChatChannel    = "channel"
)

type UpdateKind int

const (
	UpdateCommand UpdateKind = iota + 1
	UpdateText
	UpdateAction
)

type Chat struct {
	ID   int64
	Type string
}

func (c Chat) IsPrivate() bool {
	return c.Type == ChatPrivate
}

type Sender struct {
	ID        int64
	Username  string
	FirstName string
}

// DisplayName prefers the handle, then the first name, then the numeric id.
func (s Sender) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	if s.FirstName != "" {
		return s.FirstName
	}
	return strconv.FormatInt(s.ID, 10)
}

// Update is one inbound event from the chat transport.
type Update struct {
	TraceID   string
	Kind      UpdateKind
	Command   string // without the leading slash or @bot suffix
	Text      string
	Action    string // inline button payload
	ActionID  string // transport id used to acknowledge the button press
	Chat      Chat
	From      Sender
	MessageID int
}

// Button is an inline action offered under a reply.
type Button struct {
	Label  string
	Action string
}

// Reply is an outbound text message.
type Reply struct {
	ChatID  int64
	Text    string
	ReplyTo int // 0 sends a plain message
	Buttons []Button
}
