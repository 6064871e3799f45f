package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/yahsan2/jira-csv/pkg/config"
)

// Client is a thin wrapper around the Jira REST API (v2) for the operations
// the uploader needs: creating issues and probing connectivity.
type Client struct {
	baseURL string
	email   string
	token   string
	client  *http.Client
}

// NewClient creates a new Jira client from the configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Jira.BaseURL,
		email:   cfg.Jira.Email,
		token:   cfg.Jira.Token,
		client:  &http.Client{},
	}
}

// Create creates one issue and returns Jira's record of it. Failures come
// back as *APIError carrying the classification the retry policy needs.
func (c *Client) Create(fields IssueFields) (*CreatedIssue, error) {
	if err := fields.Validate(); err != nil {
		return nil, &APIError{Type: ErrorTypeClientRejected, Message: err.Error()}
	}

	payload, err := json.Marshal(fields.ToPayload())
	if err != nil {
		return nil, &APIError{Type: ErrorTypeClientRejected, Message: "failed to encode payload", Cause: err}
	}

	url := fmt.Sprintf("%s/rest/api/2/issue", c.baseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, NewNetworkError("failed to create request", err)
	}

	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewNetworkError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewStatusError(resp.StatusCode, string(body))
	}

	var created CreatedIssue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, &APIError{Type: ErrorTypeServer, Message: "failed to decode response", Cause: err}
	}
	if created.Key == "" {
		return nil, &APIError{Type: ErrorTypeServer, Message: "response contains no issue key"}
	}

	return &created, nil
}

// ServerInfo probes the server before any submission begins. It hits an
// endpoint that requires valid credentials, so rejected authentication
// surfaces here rather than on the first create.
func (c *Client) ServerInfo() (*ServerInfo, error) {
	url := fmt.Sprintf("%s/rest/api/2/serverInfo", c.baseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create request", err)
	}

	req.SetBasicAuth(c.email, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewNetworkError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewStatusError(resp.StatusCode, string(body))
	}

	var info ServerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &APIError{Type: ErrorTypeServer, Message: "failed to decode server info", Cause: err}
	}

	return &info, nil
}

// BrowseURL returns the human-facing URL of an issue key.
func (c *Client) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, key)
}
