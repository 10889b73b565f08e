// Package siteclient submits the public contact and referral forms. Forms are
// validated before anything is sent; an invalid form never reaches the network.
package siteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"wmhn-clinic-api/pkg/validator"
)

const (
	ContactPath  = "/api/contact"
	ReferralPath = "/api/referral"

	defaultTimeout = 15 * time.Second
	bodyReadLimit  = 64 * 1024
)

// ValidationError lists the invalid fields of a form, keyed by wire name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid form: " + strings.Join(fields, ", ")
}

// UnexpectedResponseError is returned when the endpoint answers with a
// non-2xx status. Response carries the decoded body when there was one.
type UnexpectedResponseError struct {
	StatusCode int
	Response   *SubmissionResponse
}

func (e *UnexpectedResponseError) Error() string {
	if e.Response != nil && e.Response.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Response.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	validator  *validator.CustomValidator
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		validator:  validator.NewValidator(),
	}
}

func (c *Client) SubmitContact(ctx context.Context, req *ContactRequest) (*SubmissionResponse, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}
	return c.post(ctx, ContactPath, req)
}

func (c *Client) SubmitReferral(ctx context.Context, req *ReferralRequest) (*SubmissionResponse, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}
	return c.post(ctx, ReferralPath, req)
}

func (c *Client) validate(form interface{}) error {
	if err := c.validator.Validate(form); err != nil {
		return &ValidationError{Fields: c.validator.FormatValidationErrors(err)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, form interface{}) (*SubmissionResponse, error) {
	data, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyReadLimit))
	if err != nil {
		return nil, err
	}

	var result SubmissionResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respErr := &UnexpectedResponseError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			respErr.Response = &result
		}
		return nil, respErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, decodeErr)
	}

	return &result, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
