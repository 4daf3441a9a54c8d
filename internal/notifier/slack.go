package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends change alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	pause      time.Duration // between messages
}

// NewSlackNotifier returns a notifier that posts each change to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		pause:      500 * time.Millisecond,
	}
}

// Notify sends each change as a separate Slack message using Block Kit.
// Returns an error only if ALL messages fail. Individual failures are logged.
func (s *SlackNotifier) Notify(changes []model.RecordChange) error {
	if len(changes) == 0 {
		return nil
	}

	failures := 0
	for i, c := range changes {
		if i > 0 {
			time.Sleep(s.pause)
		}

		if err := s.sendMessage(c); err != nil {
			s.logger.Error("slack notification failed", "wiki", c.Family, "page_id", c.PageID, "error", err)
			failures++
		}
	}

	sent := len(changes) - failures
	if failures == len(changes) {
		return fmt.Errorf("all %d slack notifications failed", failures)
	}
	s.logger.Info("slack notifications complete", "sent", sent, "failed", failures)
	return nil
}

// rateLimitAttempts bounds posts of one message when Slack answers 429.
const rateLimitAttempts = 2

func (s *SlackNotifier) sendMessage(c model.RecordChange) error {
	body, err := json.Marshal(buildPayload(c))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	for attempt := 1; ; attempt++ {
		status, wait, err := s.post(body)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusOK:
			s.logger.Info("slack message sent", "wiki", c.Family, "page_id", c.PageID, "attempt", attempt)
			return nil
		case status == http.StatusTooManyRequests && attempt < rateLimitAttempts:
			s.logger.Warn("slack rate limited, retrying", "wiki", c.Family, "page_id", c.PageID, "wait", wait)
			time.Sleep(wait)
		default:
			return fmt.Errorf("slack returned %d (attempt %d)", status, attempt)
		}
	}
}

// post sends one webhook request and reports the status plus how long Slack asked us to wait.
func (s *SlackNotifier) post(body []byte) (int, time.Duration, error) {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	wait := time.Second
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		wait = time.Duration(secs) * time.Second
	}
	return resp.StatusCode, wait, nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

// SendTestMessage sends a dummy change notification to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	rec := model.CanonicalRecord{Type: "Character", Name: "hoyotext test", Description: "Integration verified"}
	return n.Notify([]model.RecordChange{{
		Family:   model.StarRail,
		PageID:   1,
		Previous: rec,
		Current:  rec,
		Changed:  []string{"description"},
	}})
}

func buildPayload(c model.RecordChange) slackPayload {
	changed := strings.Join(c.Changed, ", ")
	if changed == "" {
		changed = "unknown"
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "📝 " + c.Family.DisplayName() + ": " + c.Current.Name},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Type:*\n" + c.Current.Type},
				{Type: "mrkdwn", Text: "*Page:*\n" + strconv.Itoa(c.PageID)},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "*Changed:* " + changed},
		},
		{
			Type: "actions",
			Elements: []slackElement{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "Open Wiki Page"},
					URL:   model.EntryURL(c.Family, c.PageID),
					Style: "primary",
				},
			},
		},
		{Type: "divider"},
	}

	return slackPayload{Blocks: blocks}
}
