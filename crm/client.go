// Package crm forwards captured leads to the hosted CRM, which owns the
// admin alerting pipeline.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://sbaycrm.netlify.app"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromEnv reads CRM_URL, falling back to the hosted default
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("CRM_URL"))
}

// LeadNotification is the public-leads payload the CRM accepts
type LeadNotification struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company,omitempty"`
	PropertyInterest string `json:"property_interest,omitempty"`
	Message          string `json:"message,omitempty"`
	Source           string `json:"source"`
	Priority         string `json:"priority"`
	Type             string `json:"type"`
}

// NotifyLead posts the lead to the CRM's public intake endpoint
func (c *Client) NotifyLead(ctx context.Context, notification LeadNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/public/leads", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("crm notification failed with status %d", resp.StatusCode)
	}
	return nil
}
