package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(to, body string) error
}

// HTTPSMSService sends messages through an HTTP SMS gateway.
type HTTPSMSService struct {
	Username string
	Password string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// smsResponse represents the response from the SMS gateway
type smsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
	} `json:"data"`
}

// NewHTTPSMSService creates an SMS service configured from the environment.
func NewHTTPSMSService() *HTTPSMSService {
	return &HTTPSMSService{
		Username: os.Getenv("SMS_API_USERNAME"),
		Password: os.Getenv("SMS_API_PASSWORD"),
		SenderID: os.Getenv("SMS_SENDER_ID"),
		APIPath:  os.Getenv("SMS_API_URL"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers body to the given phone number via the gateway.
func (s *HTTPSMSService) Send(to, body string) error {
	if s.Username == "" || s.Password == "" || s.APIPath == "" {
		return fmt.Errorf("SMS provider credentials not configured")
	}

	if !strings.HasPrefix(to, "+") {
		to = "+" + to
	}

	params := url.Values{}
	params.Set("username", s.Username)
	params.Set("password", s.Password)
	params.Set("senderid", s.SenderID)
	params.Set("destination", to)
	params.Set("message", body)

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest(http.MethodPost, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed smsResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		// Some gateways answer with a bare success string
		lower := strings.ToLower(strings.TrimSpace(string(respBody)))
		if strings.Contains(lower, "success") || strings.Contains(lower, "sent") {
			return nil
		}
		return fmt.Errorf("failed to parse SMS response: %w", err)
	}

	if parsed.Status == "success" || parsed.Status == "sent" {
		return nil
	}
	return fmt.Errorf("SMS sending failed: %s", parsed.Message)
}
