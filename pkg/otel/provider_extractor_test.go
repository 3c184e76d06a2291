package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/otel"

	"github.com/stretchr/testify/require"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "deadline" }
func (timeoutError) Timeout() bool { return true }

type staticExtractor struct {
	doc *extractor.Document
	err error
}

func (e *staticExtractor) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	return e.doc, e.err
}

func TestExtractor(t *testing.T) {
	spans := tracetest.NewInMemoryExporter()
	reader := sdkmetric.NewManualReader()

	otelapi.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans)))
	otelapi.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	ok := otel.NewExtractor("mineru", &staticExtractor{doc: &extractor.Document{Content: []byte("# Title"), Pages: 2}})
	failing := otel.NewExtractor("mineru", &staticExtractor{err: timeoutError{}})
	broken := otel.NewExtractor("mineru", &staticExtractor{err: errors.New("boom")})

	doc, err := ok.Extract(context.Background(), extractor.Input{URL: "https://example.com/paper.pdf"}, nil)
	require.NoError(t, err)
	require.Equal(t, "# Title", doc.Text())

	_, err = failing.Extract(context.Background(), extractor.Input{File: &extractor.File{Content: []byte("%PDF")}}, nil)
	require.Error(t, err)

	_, err = broken.Extract(context.Background(), extractor.Input{}, nil)
	require.Error(t, err)

	ended := spans.GetSpans()
	require.Len(t, ended, 3)

	require.Equal(t, "extract mineru", ended[0].Name)
	require.Equal(t, codes.Unset, ended[0].Status.Code)
	require.Equal(t, codes.Error, ended[1].Status.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	outcomes := map[string]int64{}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "extractor.operation.count" {
				continue
			}

			sum, isSum := m.Data.(metricdata.Sum[int64])
			require.True(t, isSum)

			for _, dp := range sum.DataPoints {
				val, _ := dp.Attributes.Value("extractor.outcome")
				outcomes[val.AsString()] += dp.Value
			}
		}
	}

	require.Equal(t, map[string]int64{"ok": 1, "timeout": 1, "error": 1}, outcomes)
}
