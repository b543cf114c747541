package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"bookingsaver/internal/models"
)

const defaultAPIBase = "https://api.telegram.org"

// Booking.com URLs in free text, case-insensitive, with or without www,
// any path and query.
var bookingURLRe = regexp.MustCompile(`(?i)https?://(?:www\.)?booking\.com/\S+`)

// ExtractBookingURLs returns every Booking.com URL found in a message,
// in order of appearance.
func ExtractBookingURLs(text string) []string {
	return bookingURLRe.FindAllString(text, -1)
}

type Service struct {
	logger      *logrus.Logger
	client      *http.Client
	apiBase     string
	token       string
	pollTimeout int
	offset      int64
}

func NewService(logger *logrus.Logger, token string, pollTimeout int) *Service {
	return &Service{
		logger: logger,
		client: &http.Client{
			// Long polls hold the connection for pollTimeout seconds
			Timeout: time.Duration(pollTimeout+10) * time.Second,
		},
		apiBase:     defaultAPIBase,
		token:       token,
		pollTimeout: pollTimeout,
	}
}

// SendMessage sends a message to the given chat
func (s *Service) SendMessage(chatID int64, message string) error {
	if s.token == "" {
		return errors.New("Telegram bot token is not configured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := s.client.Post(endpoint, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// GetUpdates long-polls the Bot API for new updates past the current
// offset. The offset advances so each update is delivered once.
func (s *Service) GetUpdates(ctx context.Context) ([]models.TelegramUpdate, error) {
	params := url.Values{
		"timeout": []string{strconv.Itoa(s.pollTimeout)},
		"offset":  []string{strconv.FormatInt(s.offset, 10)},
	}
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", s.apiBase, s.token, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create getUpdates request: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getUpdates request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read getUpdates response: %v", err)
	}

	var updates models.TelegramUpdatesResponse
	if err := json.Unmarshal(body, &updates); err != nil {
		return nil, fmt.Errorf("failed to parse getUpdates response: %v", err)
	}
	if !updates.OK {
		return nil, fmt.Errorf("Telegram API error: %s", updates.Description)
	}

	for _, u := range updates.Result {
		if u.UpdateID >= s.offset {
			s.offset = u.UpdateID + 1
		}
	}
	return updates.Result, nil
}

// Poll runs the long-poll loop until the context is cancelled, invoking
// handle for every inbound text message. Poll errors are logged and
// retried after a short backoff; they never stop the loop.
func (s *Service) Poll(ctx context.Context, handle func(models.TelegramMessage)) {
	s.logger.Info("Telegram polling started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Telegram polling stopped")
			return
		default:
		}

		updates, err := s.GetUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			s.logger.WithError(err).Error("Failed to fetch updates")
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			handle(*update.Message)
		}
	}
}
