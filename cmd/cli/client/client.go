package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a thin JSON client for the Course API. When Email is set,
// requests carry Basic credentials.
type Client struct {
	BaseURL  string
	Email    string
	Password string
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/")}
}

// WithAuth returns a copy of the client that authenticates as email.
func (c *Client) WithAuth(email, password string) *Client {
	cp := *c
	cp.Email = email
	cp.Password = password
	return &cp
}

// Do sends a JSON request and decodes a JSON response into out (skipped
// when out is nil or the response has no body). It returns the response
// headers so callers can read Location on 201s.
func (c *Client) Do(method, path string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Email != "" {
		req.SetBasicAuth(c.Email, c.Password)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}

// apiError turns an error response into something readable: the API's
// message, its validation list, or the raw body as a fallback.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if len(body.Errors) > 0 {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.Join(body.Errors, "; "))
		}
		if body.Message != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, body.Message)
		}
	}
	return fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
