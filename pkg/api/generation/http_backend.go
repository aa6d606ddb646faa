package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/model"
)

const defaultGenerationTimeout = 60 * time.Second

// HTTPBackend calls the AI generation service over JSON/HTTP
type HTTPBackend struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPBackend(baseURL, apiKey string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &HTTPBackend{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

type sequenceEnvelope struct {
	Sequence *model.Sequence `json:"sequence"`
}

type structureEnvelope struct {
	Structure []model.SequencePhase `json:"structure"`
}

func (b *HTTPBackend) Generate(ctx context.Context, req BackendRequest) (*model.Sequence, error) {
	var out sequenceEnvelope
	if err := b.postJSON(ctx, "/v1/sequences", req, &out); err != nil {
		return nil, err
	}
	if out.Sequence == nil {
		return nil, errors.New("generation service returned no sequence")
	}
	return out.Sequence, nil
}

func (b *HTTPBackend) GenerateStructure(ctx context.Context, req BackendRequest) ([]model.SequencePhase, error) {
	var out structureEnvelope
	if err := b.postJSON(ctx, "/v1/sequences/structure", req, &out); err != nil {
		return nil, err
	}
	return out.Structure, nil
}

func (b *HTTPBackend) httpClient() *http.Client {
	if b.Client == nil {
		b.Client = &http.Client{Timeout: defaultGenerationTimeout}
	}
	return b.Client
}

func (b *HTTPBackend) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	if b.BaseURL == "" {
		return errors.New("generation service URL is empty")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode generation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build generation request")
	}
	req.Header.Set("Content-Type", "application/json")
	if b.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.APIKey)
	}

	resp, err := b.httpClient().Do(req)
	if err != nil {
		return errors.Wrap(err, "call generation service")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read generation response")
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.Wrapf(ErrUnauthorized, "generation service answered %s", resp.Status)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(raw))
		if snippet == "" {
			snippet = resp.Status
		}
		return errors.Errorf("generation service failed (%s): %s", resp.Status, snippet)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode generation response")
	}
	return nil
}
