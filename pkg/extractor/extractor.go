package extractor

import (
	"context"
	"errors"

	"github.com/adrianliechti/mineru/pkg/provider"
)

type Provider interface {
	Extract(ctx context.Context, input Input, options *ExtractOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File = provider.File

type Input struct {
	URL string

	File *provider.File
}

type ExtractOptions struct {
	Language string

	DisableOCR     bool
	DisableFormula bool
	DisableTable   bool
}

type Document struct {
	Content     []byte
	ContentType string

	Pages int
}

func (d *Document) Text() string {
	if d == nil {
		return ""
	}

	return string(d.Content)
}
