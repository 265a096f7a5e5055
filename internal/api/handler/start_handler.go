package handler

import (
	"context"

	"practice_tracker/internal/app/service"
	"practice_tracker/internal/domain/model"
)

const (
	MsgUserAdded       = "I have added you to the database"
	MsgStartInGroup    = "I cant handle all of you at once :(, pm me /start to be added to the database!"
	MsgSomethingFailed = "Something went wrong, please try again later."
)

// Func handles one inbound update and returns the messages to send back.
type Func func(ctx context.Context, upd model.Update) ([]model.Reply, error)

type StartHandler struct {
	userService *service.UserService
}

func NewStartHandler(us *service.UserService) *StartHandler {
	return &StartHandler{userService: us}
}

// Start registers the sender. Group chats only get directions to DM the bot.
func (h *StartHandler) Start(ctx context.Context, upd model.Update) ([]model.Reply, error) {
	if !upd.Chat.IsPrivate() {
		return replyTo(upd, MsgStartInGroup), nil
	}
	if _, err := h.userService.EnsureUser(ctx, upd.From.ID); err != nil {
		return nil, err
	}
	return replyTo(upd, MsgUserAdded), nil
}

func replyTo(upd model.Update, text string) []model.Reply {
	return []model.Reply{{ChatID: upd.Chat.ID, Text: text, ReplyTo: upd.MessageID}}
}

func send(upd model.Update, p service.Prompt) []model.Reply {
	return []model.Reply{{ChatID: upd.Chat.ID, Text: p.Text, Buttons: p.Buttons}}
}
