package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Gateway represents an SMS gateway interface
type Gateway interface {
	SendSMS(ctx context.Context, msisdn, message string) (string, error)
}

// MTNGateway represents an MTN SMS gateway
type MTNGateway struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	MockSMS    bool
	httpClient *http.Client
}

// NewMTNGateway creates a new MTN SMS gateway
func NewMTNGateway(baseURL, apiKey, apiSecret string, mockSMS bool) *MTNGateway {
	return &MTNGateway{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		MockSMS:   mockSMS,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendSMS sends an SMS using the MTN gateway
func (g *MTNGateway) SendSMS(ctx context.Context, msisdn, message string) (string, error) {
	if g.MockSMS {
		msgID := fmt.Sprintf("MTN-MOCK-MSG-%d", time.Now().UnixNano())
		log.WithFields(log.Fields{"msisdn": msisdn, "messageId": msgID}).Info("mock sms sent")
		return msgID, nil
	}

	requestBody := map[string]interface{}{
		"to":      msisdn,
		"message": message,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", g.APIKey)
	req.SetBasicAuth(g.APIKey, g.APISecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return response.MessageID, nil
}

// SentMessage is a message captured by MockGateway
type SentMessage struct {
	MSISDN  string
	Message string
}

// MockGateway records messages instead of sending them
type MockGateway struct {
	Name string

	mu   sync.Mutex
	sent []SentMessage
}

// NewMockGateway creates a new Mock SMS gateway
func NewMockGateway(name string) *MockGateway {
	return &MockGateway{Name: name}
}

// SendSMS records the message
func (g *MockGateway) SendSMS(ctx context.Context, msisdn, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, SentMessage{MSISDN: msisdn, Message: message})
	return fmt.Sprintf("%s-MOCK-MSG-%d", g.Name, len(g.sent)), nil
}

// Sent returns a copy of the recorded messages
func (g *MockGateway) Sent() []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]SentMessage(nil), g.sent...)
}
