package line

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/ulandresort/ulandbot/internal/catalog"
)

// Client sends replies and pushes through the LINE Messaging API and looks
// up sender profiles.
type Client struct {
	api *messaging_api.MessagingApiAPI
}

// NewClient creates a client authenticated with the channel access token.
// Every API call is bounded by timeout.
func NewClient(accessToken string, timeout time.Duration, opts ...messaging_api.MessagingApiAPIOption) (*Client, error) {
	opts = append([]messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(&http.Client{Timeout: timeout}),
	}, opts...)

	api, err := messaging_api.NewMessagingApiAPI(accessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating messaging api client: %w", err)
	}
	return &Client{api: api}, nil
}

// Reply answers an event through its one-time reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, msgs []catalog.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   Render(msgs),
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// Push sends msgs to a user, group or room outside the reply-token flow. A
// fresh retry key is attached so LINE can deduplicate transport-level retries.
func (c *Client) Push(ctx context.Context, to string, msgs []catalog.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: Render(msgs),
	}, uuid.NewString())
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	return nil
}

// DisplayName returns the LINE display name of userID.
func (c *Client) DisplayName(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	profile, err := c.api.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	return profile.DisplayName, nil
}
