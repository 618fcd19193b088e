package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackgods/hospital-dashboard/internal/tables"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

var errTableDown = errors.New("table unavailable")

// fakeSource serves fixed rows per table; tables it does not know fail.
type fakeSource struct {
	rows map[string][]byte
}

func (s *fakeSource) Rows(_ context.Context, table string) ([]byte, error) {
	raw, ok := s.rows[table]
	if !ok {
		return nil, errTableDown
	}
	return raw, nil
}

func newTestService(t *testing.T, rows map[string]any) *Service {
	t.Helper()

	src := &fakeSource{rows: make(map[string][]byte, len(rows))}
	for table, v := range rows {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		src.rows[table] = raw
	}

	client := tables.NewClient(src, zap.NewNop(), nil)
	return NewService(client, zap.NewNop(),
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	)
}

func ts(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func strp(v string) *string {
	return &v
}

func floatp(v float64) *float64 {
	return &v
}
