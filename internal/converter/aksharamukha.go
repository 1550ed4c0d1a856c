package converter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/valpere/lipyantar/internal/chunker"
	"github.com/valpere/lipyantar/internal/preserve"
	"github.com/valpere/lipyantar/internal/script"
)

const (
	// DefaultBaseURL is the public Aksharamukha conversion endpoint.
	DefaultBaseURL = "https://aksharamukha-plugin.appspot.com"

	// maxChunkRunes keeps each GET request comfortably under the endpoint's
	// URL length limit once the text is query-escaped.
	maxChunkRunes = 1500

	// retryAttempts is the total number of tries per chunk including the
	// first.
	retryAttempts = 3
)

// Aksharamukha is an HTTP client for an Aksharamukha transliteration server.
type Aksharamukha struct {
	baseURL string
	client  *http.Client
}

// NewAksharamukha constructs the client. An empty baseURL selects the public
// endpoint; timeout ≤ 0 defaults to 30 seconds.
func NewAksharamukha(baseURL string, timeout time.Duration) *Aksharamukha {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Aksharamukha{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *Aksharamukha) Name() string {
	return "aksharamukha"
}

// Convert transliterates text between schemes. Long texts are chunked at
// sentence boundaries and rejoined; for Latin (ITRANS) source text, URLs,
// emails, and digit runs are shielded from the engine and restored
// afterwards.
func (a *Aksharamukha) Convert(ctx context.Context, source, target script.Script, text string) (string, error) {
	var tokens []string
	if source == script.Latin {
		text, tokens = preserve.Protect(text)
		// ITRANS honors ## … ## as a no-transliteration span, which keeps the
		// markers intact through the engine.
		for i := range tokens {
			text = strings.Replace(text, fmt.Sprintf("[PH%d]", i), fmt.Sprintf("##[PH%d]##", i), 1)
		}
	}

	chunks := chunker.Chunk(text, maxChunkRunes)
	converted := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := a.convertChunk(ctx, source, target, chunk)
		if err != nil {
			return "", err
		}
		converted = append(converted, out)
	}

	result := chunker.Join(converted)
	if len(tokens) > 0 {
		result = strings.ReplaceAll(result, "##", "")
		result = preserve.Restore(result, tokens)
	}

	if strings.TrimSpace(result) == "" {
		return "", ErrEmptyResult
	}
	return result, nil
}

func (a *Aksharamukha) convertChunk(ctx context.Context, source, target script.Script, text string) (string, error) {
	q := url.Values{}
	q.Set("source", SchemeName(source))
	q.Set("target", SchemeName(target))
	q.Set("text", text)
	apiURL := a.baseURL + "/api/public?" + q.Encode()

	var body string
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}

			resp, err := a.client.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			switch {
			case resp.StatusCode == http.StatusOK:
				body = string(data)
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				return fmt.Errorf("engine returned status %d", resp.StatusCode)
			default:
				return retry.Unrecoverable(fmt.Errorf("engine returned status %d: %s", resp.StatusCode, data))
			}
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("aksharamukha %s→%s: %w", SchemeName(source), SchemeName(target), err)
	}

	return strings.TrimSpace(body), nil
}

// IsAvailable probes the endpoint with a one-word conversion.
func (a *Aksharamukha) IsAvailable(ctx context.Context) error {
	_, err := a.convertChunk(ctx, script.Latin, script.Devanagari, "namaste")
	return err
}
