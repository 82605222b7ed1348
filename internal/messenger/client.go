package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Sender delivers replies to a conversation participant.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) error
	SendImage(ctx context.Context, recipientID, imageURL string) error
}

// GraphClient implements Sender against the Facebook Graph Send API.
// The page access token is carried by an oauth2 static token source so
// every request is authorized without query-string token plumbing.
type GraphClient struct {
	httpClient *http.Client
	baseAPI    string
}

func NewGraphClient(pageAccessToken string) *GraphClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: pageAccessToken, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = 10 * time.Second
	return &GraphClient{
		httpClient: client,
		baseAPI:    "https://graph.facebook.com/v18.0",
	}
}

func (c *GraphClient) SendText(ctx context.Context, recipientID, text string) error {
	return c.send(ctx, recipientID, map[string]any{"text": text})
}

func (c *GraphClient) SendImage(ctx context.Context, recipientID, imageURL string) error {
	return c.send(ctx, recipientID, map[string]any{
		"attachment": map[string]any{
			"type": "image",
			"payload": map[string]any{
				"url":         imageURL,
				"is_reusable": true,
			},
		},
	})
}

func (c *GraphClient) send(ctx context.Context, recipientID string, message map[string]any) error {
	payload := map[string]any{
		"recipient": map[string]any{"id": recipientID},
		"message":   message,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseAPI+"/me/messages", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send api failed with %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
