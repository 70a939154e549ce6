// Package replysender posts reply messages to the messaging platform's reply API.
package replysender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
)

const (
	// ReplyFailureCode is the code returned when the reply API call failed.
	ReplyFailureCode = -1

	// ReplyPath is the reply endpoint relative to the API base URL.
	ReplyPath = "/v2/bot/message/reply"

	// MaxTextLength is the longest text, in characters, the reply API accepts.
	MaxTextLength = 5000

	// DefaultBaseURL is the production API base URL.
	DefaultBaseURL = "https://api.line.me"

	defaultReplyTimeout = 30 * time.Second
	// Maximum response body size to read for error logging
	maxResponseBodySize = 1024
)

// ErrNoAccessToken is returned when no channel access token is configured.
var ErrNoAccessToken = errors.New("channel access token is not configured")

// TextMessage is a single text message in a reply.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ReplyRequest is the reply API request body.
type ReplyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []TextMessage `json:"messages"`
}

// ReplySender sends replies bound to a reply token.
type ReplySender struct {
	client      *http.Client
	endpoint    string
	accessToken string
}

// NewReplySender creates a ReplySender that posts to baseURL + ReplyPath.
// A nil client gets a client with the default timeout.
func NewReplySender(client *http.Client, baseURL, accessToken string) *ReplySender {
	if client == nil {
		client = &http.Client{
			Timeout: defaultReplyTimeout,
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ReplySender{
		client:      client,
		endpoint:    strings.TrimRight(baseURL, "/") + ReplyPath,
		accessToken: accessToken,
	}
}

// Reply sends text as a single text message for replyToken.
// Text longer than MaxTextLength characters is truncated.
func (s *ReplySender) Reply(ctx context.Context, replyToken, text string) error {
	if s.accessToken == "" {
		return ErrNoAccessToken
	}

	body, err := json.Marshal(ReplyRequest{
		ReplyToken: replyToken,
		Messages:   []TextMessage{{Type: "text", Text: Truncate(text, MaxTextLength)}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reply payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return richerrors.Error{
				Code: ReplyFailureCode,
				Err:  fmt.Errorf("invalid URL: %w", err),
			}
		}
		return fmt.Errorf("failed to create reply request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return richerrors.Error{
			Code: ReplyFailureCode,
			Err:  fmt.Errorf("failed to POST reply: %w", err),
		}
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return richerrors.Error{
			Code: ReplyFailureCode,
			Err:  fmt.Errorf("reply API returned status code %d: %s", resp.StatusCode, string(respBody)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Truncate cuts s to at most limit characters.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
