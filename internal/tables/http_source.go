package tables

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// HTTPSource reads tables from GET {base}/{table}, answering {"data": [...]}.
type HTTPSource struct {
	client *resty.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{client: client}
}

func (s *HTTPSource) Rows(ctx context.Context, table string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(table))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: unexpected status %d", table, resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", table, err)
	}
	return env.Data, nil
}
