package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/limiter"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingExtractor struct {
	calls int
}

func (e *countingExtractor) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	e.calls++
	return &extractor.Document{}, nil
}

func TestExtractWithoutLimiter(t *testing.T) {
	p := &countingExtractor{}
	e := limiter.NewExtractor(nil, p)

	for range 3 {
		_, err := e.Extract(context.Background(), extractor.Input{}, nil)
		require.NoError(t, err)
	}

	require.Equal(t, 3, p.calls)
}

func TestExtractLimited(t *testing.T) {
	p := &countingExtractor{}
	e := limiter.NewExtractor(rate.NewLimiter(rate.Every(time.Hour), 1), p)

	_, err := e.Extract(context.Background(), extractor.Input{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = e.Extract(ctx, extractor.Input{}, nil)
	require.Error(t, err)

	require.Equal(t, 1, p.calls)
}
