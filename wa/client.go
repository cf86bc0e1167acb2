// Package wa sends WhatsApp texts through the Dripsender HTTP API. Sends are
// fire-and-forget from the caller's point of view: a failed message never
// fails an order.
package wa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.dripsender.id"

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	APIKey string `json:"api_key"`
	Text   string `json:"text"`
	Phone  string `json:"phone"`
}

// SendText delivers a text to a phone number in international format.
func (c *Client) SendText(ctx context.Context, text, phone string) error {
	body, err := json.Marshal(sendRequest{APIKey: c.APIKey, Text: text, Phone: phone})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("dripsender send: status %d", resp.StatusCode)
	}
	return nil
}

// NormalizePhone rewrites a local Indonesian number (08xx...) to
// international form (628xx...), which Dripsender requires.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "0") {
		return "62" + phone[1:]
	}
	return phone
}
