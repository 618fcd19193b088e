package tables

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Source reads one whole table and returns the JSON array of its rows.
// A nil or non-array result means "no rows".
type Source interface {
	Rows(ctx context.Context, table string) ([]byte, error)
}

// FailureRecorder is told about every soft failure so health checks can
// report degraded tables.
type FailureRecorder interface {
	RecordFailure(ctx context.Context, table string) error
}

// Client wraps a Source with the fail-soft policy every dashboard relies on.
type Client struct {
	source   Source
	logger   *zap.Logger
	recorder FailureRecorder
}

func NewClient(source Source, logger *zap.Logger, recorder FailureRecorder) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		source:   source,
		logger:   logger,
		recorder: recorder,
	}
}

// Fetch reads table and decodes its rows. It never fails: transport errors,
// non-success statuses and malformed payloads are logged and yield an empty,
// non-nil slice.
func Fetch[T any](ctx context.Context, c *Client, table string) []T {
	start := time.Now()

	raw, err := c.source.Rows(ctx, table)
	if err != nil {
		c.softFail(ctx, table, err)
		return []T{}
	}

	rows, err := decodeRows[T](raw)
	if err != nil {
		c.softFail(ctx, table, fmt.Errorf("decode rows: %w", err))
		return []T{}
	}

	c.logger.Debug("table fetched",
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)),
	)
	return rows
}

func decodeRows[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	rows := []T{}
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) softFail(ctx context.Context, table string, err error) {
	c.logger.Warn("table fetch failed, using empty result",
		zap.String("table", table),
		zap.Error(err),
	)

	if c.recorder == nil {
		return
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if recErr := c.recorder.RecordFailure(recCtx, table); recErr != nil {
		c.logger.Debug("record table failure", zap.String("table", table), zap.Error(recErr))
	}
}
