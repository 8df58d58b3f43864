package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/share"
	"github.com/meltforce/repshare/internal/storage"
)

// HTTPClient implements DataSource by calling the RepShare REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
// apiKey is only needed for ImportShare; read calls go unauthenticated.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListGroups(ctx context.Context) ([]models.GroupRow, error) {
	body, err := c.get(ctx, "/api/v1/groups")
	if err != nil {
		return nil, err
	}

	var groups []models.GroupRow
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("httpclient: decode groups: %w", err)
	}
	return groups, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.ExerciseRow, error) {
	body, err := c.get(ctx, "/api/v1/exercises")
	if err != nil {
		return nil, err
	}

	var exercises []models.ExerciseRow
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

// GetExerciseByKey lists exercises and filters client-side; the REST API
// has no by-key lookup.
func (c *HTTPClient) GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error) {
	exercises, err := c.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		if exercises[i].Key() == key {
			return &exercises[i], nil
		}
	}
	return nil, nil
}

func (c *HTTPClient) ListTrainingRecords(ctx context.Context) ([]models.TrainingRecordRow, error) {
	body, err := c.get(ctx, "/api/v1/records")
	if err != nil {
		return nil, err
	}

	var records []models.TrainingRecordRow
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) ListTrainingRecordsByExercise(ctx context.Context, exerciseID int64) ([]models.TrainingRecordRow, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+strconv.FormatInt(exerciseID, 10)+"/records")
	if err != nil {
		return nil, err
	}

	var records []models.TrainingRecordRow
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats")
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}

func (c *HTTPClient) ImportShare(ctx context.Context, env *models.ShareEnvelope) (*share.ImportReport, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode bundle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/share/import", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: share import: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: share import returned %d: %s", resp.StatusCode, body)
	}

	var report share.ImportReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("httpclient: decode import report: %w", err)
	}
	return &report, nil
}
