package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Extractor interface {
	Observable
	extractor.Provider
}

type observableExtractor struct {
	provider string

	extractor extractor.Provider

	durationMetric metric.Float64Histogram
	requestMetric  metric.Int64Counter
}

func NewExtractor(provider string, p extractor.Provider) Extractor {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("extractor.operation.duration",
		metric.WithDescription("Duration of document extractions"),
		metric.WithUnit("s"),
	)

	requestMetric, _ := meter.Int64Counter("extractor.operation.count",
		metric.WithDescription("Number of document extractions by outcome"),
	)

	return &observableExtractor{
		extractor: p,

		provider: provider,

		durationMetric: durationMetric,
		requestMetric:  requestMetric,
	}
}

func (p *observableExtractor) otelSetup() {
}

func (p *observableExtractor) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	attrs := []KeyValue{
		String("extractor.provider", p.provider),
	}

	if input.File != nil {
		attrs = append(attrs, String("extractor.input", "file"), Int("extractor.input.size", len(input.File.Content)))
	} else {
		attrs = append(attrs, String("extractor.input", "url"))
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+p.provider,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	timestamp := time.Now()

	result, err := p.extractor.Extract(ctx, input, options)

	labels := metric.WithAttributes(
		String("extractor.provider", p.provider),
		String("extractor.outcome", outcome(err)),
	)

	p.durationMetric.Record(ctx, time.Since(timestamp).Seconds(), labels)
	p.requestMetric.Add(ctx, 1, labels)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	if result != nil {
		span.SetAttributes(
			Int("extractor.output.size", len(result.Content)),
			Int("extractor.output.pages", result.Pages),
		)
	}

	return result, nil
}
