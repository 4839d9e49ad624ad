// Package social implements the optional social announcement transport.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// XPoster publishes short announcements to X over its v2 API with a bearer
// credential. Without a token every Post is a silent no-op.
type XPoster struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewXPoster(endpoint, token string) *XPoster {
	return &XPoster{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether a bearer token is configured.
func (p *XPoster) Enabled() bool {
	return p.token != ""
}

// Post publishes the text. Callers truncate to the network's length cap
// before calling.
func (p *XPoster) Post(ctx context.Context, text string) error {
	if p.token == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("social post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("social post: unexpected status %d", resp.StatusCode)
	}
	return nil
}
