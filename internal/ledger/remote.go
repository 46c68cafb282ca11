package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Remote posts payloads to an external spreadsheet endpoint.
type Remote struct {
	url        string
	httpClient *http.Client
}

// NewRemote returns a Remote for url. A nil httpClient uses http.DefaultClient.
func NewRemote(url string, httpClient *http.Client) (*Remote, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("ledger: url required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Remote{url: url, httpClient: httpClient}, nil
}

// Name implements Ledger.
func (r *Remote) Name() string { return "Google Sheet" }

// CheckOrRegister implements Ledger. A body without a recognizable status is
// returned as-is; callers treat it as a generic success.
func (r *Remote) CheckOrRegister(ctx context.Context, req RegistrationRequest) (RegistrationResponse, error) {
	var out RegistrationResponse
	body, err := r.post(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return RegistrationResponse{}, fmt.Errorf("ledger: decode registration response: %w", err)
	}
	return out, nil
}

// SubmitSurvey implements Ledger. The response body is ignored.
func (r *Remote) SubmitSurvey(ctx context.Context, sub SurveySubmission) error {
	_, err := r.post(ctx, sub)
	return err
}

func (r *Remote) post(ctx context.Context, payload any) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	// Apps Script reads the raw post body; text/plain avoids a preflight.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ledger: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ledger: request failed with status %d", resp.StatusCode)
	}
	return body, nil
}
