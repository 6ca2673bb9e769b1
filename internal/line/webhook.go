package line

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/ulandresort/ulandbot/internal/intent"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the request body.
// Reference: https://developers.line.biz/en/reference/messaging-api/#signature-validation
const SignatureHeader = "X-Line-Signature"

var (
	ErrInvalidSignature = errors.New("line: invalid signature")
	ErrMalformedPayload = errors.New("line: malformed webhook payload")
)

// Event is one webhook event reduced to what the bot needs. Inbound is nil
// for event kinds the bot does not answer (follow, unfollow, stickers, ...).
type Event struct {
	ID         string
	Type       string
	ReplyToken string
	// UserID is the sender; ChatID is where pushes go (the user, group or room).
	UserID  string
	ChatID  string
	Inbound intent.Event
}

// Parser verifies and decodes webhook deliveries.
type Parser struct {
	channelSecret string
}

func NewParser(channelSecret string) *Parser {
	return &Parser{channelSecret: channelSecret}
}

// Parse checks the signature of body and returns its events in delivery
// order.
func (p *Parser) Parse(body []byte, signature string) ([]Event, error) {
	if signature == "" || !webhook.ValidateSignature(p.channelSecret, signature, body) {
		return nil, ErrInvalidSignature
	}

	var cb webhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	events := make([]Event, 0, len(cb.Events))
	for _, raw := range cb.Events {
		events = append(events, convertEvent(raw))
	}
	return events, nil
}

func convertEvent(raw webhook.EventInterface) Event {
	ev := Event{Type: raw.GetType()}

	switch e := raw.(type) {
	case webhook.MessageEvent:
		ev.ID = e.WebhookEventId
		ev.ReplyToken = e.ReplyToken
		ev.UserID, ev.ChatID = sourceIDs(e.Source)
		if text, ok := e.Message.(webhook.TextMessageContent); ok {
			ev.Inbound = intent.TextMessage{Body: text.Text, SenderID: ev.UserID}
		} else if e.Message != nil {
			ev.Type = "message." + e.Message.GetType()
		}
	case webhook.PostbackEvent:
		ev.ID = e.WebhookEventId
		ev.ReplyToken = e.ReplyToken
		ev.UserID, ev.ChatID = sourceIDs(e.Source)
		if e.Postback != nil {
			ev.Inbound = intent.Postback{Payload: e.Postback.Data}
		}
	}
	return ev
}

func sourceIDs(src webhook.SourceInterface) (userID, chatID string) {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId, s.UserId
	case webhook.GroupSource:
		return s.UserId, s.GroupId
	case webhook.RoomSource:
		return s.UserId, s.RoomId
	}
	return "", ""
}
