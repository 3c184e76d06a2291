package otel

import (
	"errors"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"go.opentelemetry.io/otel/attribute"
)

type KeyValue = attribute.KeyValue

func String(key string, val string) KeyValue {
	return attribute.String(key, val)
}

func Int(key string, val int) KeyValue {
	return attribute.Int(key, val)
}

func KeyValues(attrs ...[]KeyValue) []KeyValue {
	var result []KeyValue

	for _, a := range attrs {
		result = append(result, a...)
	}

	return result
}

// outcome classifies an extraction error into a low cardinality label.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	if errors.Is(err, extractor.ErrUnsupported) {
		return "unsupported"
	}

	var timeout interface{ Timeout() bool }

	if errors.As(err, &timeout) && timeout.Timeout() {
		return "timeout"
	}

	return "error"
}
