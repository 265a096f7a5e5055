package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const pollTimeoutSeconds = 60

// Client adapts the Telegram Bot API to the bot's transport-neutral types.
type Client struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewClient(token string, debug bool, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to Telegram: %w", err)
	}
	bot.Debug = debug
	return newClient(bot, logger), nil
}

func newClient(bot *tgbotapi.BotAPI, logger *slog.Logger) *Client {
	logger.Info("Authorized on Telegram", "username", bot.Self.UserName)
	return &Client{bot: bot, logger: logger}
}

// Updates long-polls Telegram until ctx is cancelled. The returned channel is
// closed once polling has stopped.
func (c *Client) Updates(ctx context.Context) <-chan model.Update {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	raw := c.bot.GetUpdatesChan(u)

	out := make(chan model.Update)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case tu, ok := <-raw:
				if !ok {
					return
				}
				upd, ok := convertUpdate(tu, c.bot.Self.UserName)
				if !ok {
					c.logger.Debug("Ignoring unsupported update", "update_id", tu.UpdateID)
					continue
				}
				select {
				case out <- upd:
				case <-ctx.Done():
					c.bot.StopReceivingUpdates()
					return
				}
			}
		}
	}()
	return out
}

func (c *Client) Send(ctx context.Context, reply model.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Send(newMessage(reply)); err != nil {
		return fmt.Errorf("send message to chat %d: %w", reply.ChatID, err)
	}
	return nil
}

func (c *Client) AnswerAction(ctx context.Context, actionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Request(tgbotapi.NewCallback(actionID, "")); err != nil {
		return fmt.Errorf("answer callback %s: %w", actionID, err)
	}
	return nil
}

// ResolveMember returns common.ErrMemberNotFound when userID is unknown to
// chatID or has left it.
func (c *Client) ResolveMember(ctx context.Context, chatID, userID int64) (model.Sender, error) {
	if err := ctx.Err(); err != nil {
		return model.Sender{}, err
	}
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		return model.Sender{}, classifyMemberError(err)
	}
	if member.HasLeft() || member.WasKicked() || member.User == nil {
		return model.Sender{}, common.ErrMemberNotFound
	}
	return toSender(member.User), nil
}

// Descriptions Telegram uses for a 400 when the user is not in the chat.
var notMemberDescriptions = []string{"user not found", "member not found", "participant_id_invalid"}

func classifyMemberError(err error) error {
	var apiErr tgbotapi.Error
	var apiErrPtr *tgbotapi.Error
	switch {
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	case errors.As(err, &apiErr):
	default:
		return fmt.Errorf("get chat member: %w", err)
	}

	if apiErr.Code == 400 {
		desc := strings.ToLower(apiErr.Message)
		for _, d := range notMemberDescriptions {
			if strings.Contains(desc, d) {
				return fmt.Errorf("%w: %s", common.ErrMemberNotFound, apiErr.Message)
			}
		}
	}
	return fmt.Errorf("get chat member: %w", err)
}

func newMessage(reply model.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	msg.ReplyToMessageID = reply.ReplyTo
	if len(reply.Buttons) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, b := range reply.Buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}
	return msg
}

// convertUpdate drops updates the bot cannot act on, including commands
// addressed to another bot with the /command@name form.
func convertUpdate(tu tgbotapi.Update, botName string) (model.Update, bool) {
	upd := model.Update{TraceID: uuid.NewString()}

	switch {
	case tu.CallbackQuery != nil:
		cq := tu.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil || cq.From == nil {
			return model.Update{}, false
		}
		upd.Kind = model.UpdateAction
		upd.Action = cq.Data
		upd.ActionID = cq.ID
		upd.Chat = model.Chat{ID: cq.Message.Chat.ID, Type: cq.Message.Chat.Type}
		upd.From = toSender(cq.From)
		upd.MessageID = cq.Message.MessageID
		return upd, true

	case tu.Message != nil:
		msg := tu.Message
		if msg.Chat == nil || msg.From == nil {
			return model.Update{}, false
		}
		upd.Chat = model.Chat{ID: msg.Chat.ID, Type: msg.Chat.Type}
		upd.From = toSender(msg.From)
		upd.MessageID = msg.MessageID
		if msg.IsCommand() {
			if !addressedTo(msg.CommandWithAt(), botName) {
				return model.Update{}, false
			}
			upd.Kind = model.UpdateCommand
			upd.Command = msg.Command()
		} else {
			upd.Kind = model.UpdateText
			upd.Text = msg.Text
		}
		return upd, true
	}
	return model.Update{}, false
}

func addressedTo(commandWithAt, botName string) bool {
	_, target, found := strings.Cut(commandWithAt, "@")
	return !found || strings.EqualFold(target, botName)
}

func toSender(u *tgbotapi.User) model.Sender {
	return model.Sender{ID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}
