package multi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/extractor/multi"

	"github.com/stretchr/testify/require"
)

type staticExtractor struct {
	calls int

	doc *extractor.Document
	err error
}

func (e *staticExtractor) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	e.calls++
	return e.doc, e.err
}

func TestExtractFallback(t *testing.T) {
	unsupported := &staticExtractor{err: extractor.ErrUnsupported}
	supported := &staticExtractor{doc: &extractor.Document{Content: []byte("ok")}}
	unused := &staticExtractor{doc: &extractor.Document{Content: []byte("unused")}}

	e := multi.New(unsupported, supported, unused)

	doc, err := e.Extract(context.Background(), extractor.Input{URL: "https://example.com"}, nil)
	require.NoError(t, err)

	require.Equal(t, "ok", doc.Text())
	require.Equal(t, 1, unsupported.calls)
	require.Equal(t, 1, supported.calls)
	require.Zero(t, unused.calls)
}

func TestExtractError(t *testing.T) {
	failure := errors.New("remote failure")

	failing := &staticExtractor{err: failure}
	next := &staticExtractor{doc: &extractor.Document{}}

	_, err := multi.New(failing, next).Extract(context.Background(), extractor.Input{}, nil)

	require.ErrorIs(t, err, failure)
	require.Zero(t, next.calls)
}

func TestExtractNone(t *testing.T) {
	_, err := multi.New().Extract(context.Background(), extractor.Input{}, nil)
	require.ErrorIs(t, err, extractor.ErrUnsupported)
}
