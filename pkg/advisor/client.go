package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
)

// ErrEmptyResponse is returned when the model answers without usable content
var ErrEmptyResponse = errors.New("advisor returned no content")

// recentLimit is how many recent purchases are summarised for the tip prompt
const recentLimit = 5

// Client represents a generative language API client
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	MockAPI bool
	client  *http.Client
}

// NewClient creates a new advisory client
func NewClient(baseURL, apiKey, model string, mockAPI bool, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content              `json:"contents"`
	GenerationConfig map[string]interface{} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var tipSchema = map[string]interface{}{
	"type": "ARRAY",
	"items": map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"tip":         map[string]interface{}{"type": "STRING", "description": "A short, actionable title for the tip."},
			"explanation": map[string]interface{}{"type": "STRING", "description": "A brief explanation of why the tip works and how to implement it."},
		},
		"required": []string{"tip", "explanation"},
	},
}

var stationSchema = map[string]interface{}{
	"type": "ARRAY",
	"items": map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"name":    map[string]interface{}{"type": "STRING"},
			"mapLink": map[string]interface{}{"type": "STRING"},
		},
		"required": []string{"name"},
	},
}

// FuelTips asks for three fuel-saving tips based on the most recent purchases
func (c *Client) FuelTips(ctx context.Context, transactions []models.Transaction) ([]models.FuelSavingTip, error) {
	if c.MockAPI {
		return mockTips(), nil
	}

	recent := transactions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	amounts := make([]string, 0, len(recent))
	for _, tx := range recent {
		amounts = append(amounts, utils.FormatCedi(tx.Amount))
	}

	prompt := fmt.Sprintf("Based on these recent gas purchases in Ghana: %s, provide 3 practical and distinct fuel-saving tips for a commuter. "+
		"Be creative and insightful, considering the context of driving in Ghana. For example, mention tire pressure, driving habits, or route planning to avoid traffic.",
		strings.Join(amounts, ", "))

	var tips []models.FuelSavingTip
	if err := c.generate(ctx, prompt, tipSchema, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// NearbyStations asks for fuel stations close to coord
func (c *Client) NearbyStations(ctx context.Context, coord models.Coordinate) ([]models.GasStation, error) {
	if c.MockAPI {
		return mockStations(), nil
	}

	prompt := fmt.Sprintf("List up to 5 fuel stations near latitude %.4f, longitude %.4f in Ghana. "+
		"For each give its name and a Google Maps link.", coord.Lat, coord.Lng)

	var stations []models.GasStation
	if err := c.generate(ctx, prompt, stationSchema, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// generate posts prompt to generateContent and decodes the JSON answer into dest
func (c *Client) generate(ctx context.Context, prompt string, schema map[string]interface{}, dest interface{}) error {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return ErrEmptyResponse
	}

	text := strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return fmt.Errorf("failed to parse generated content: %w", err)
	}
	return nil
}
