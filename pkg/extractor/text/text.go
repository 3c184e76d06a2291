package text

import (
	"context"
	"net/http"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/provider"
)

var _ extractor.Provider = &Extractor{}

// Extractor passes documents that already are text through unchanged, so
// they never reach a remote conversion service.
type Extractor struct {
}

func New() (*Extractor, error) {
	return &Extractor{}, nil
}

func (e *Extractor) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if input.File == nil {
		return nil, extractor.ErrUnsupported
	}

	file := *input.File

	if !detectText(file) {
		return nil, extractor.ErrUnsupported
	}

	contentType := file.ContentType

	if contentType == "" {
		contentType = "text/plain"

		if strings.EqualFold(path.Ext(file.Name), ".md") {
			contentType = "text/markdown"
		}
	}

	return &extractor.Document{
		Content:     file.Content,
		ContentType: contentType,
	}, nil
}

func detectText(input provider.File) bool {
	if isSupported(input) {
		return true
	}

	if len(input.Content) == 0 || !utf8.Valid(input.Content) {
		return false
	}

	if !strings.HasPrefix(http.DetectContentType(input.Content), "text/") {
		return false
	}

	var printable int

	for _, r := range string(input.Content) {
		if r == 0 {
			return false
		}

		if r == '\n' || r == '\r' || r == '\t' || r >= 0x20 && r != 0x7f {
			printable++
		}
	}

	return printable > (utf8.RuneCount(input.Content) * 90 / 100)
}

func isSupported(file provider.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		mediaType, _, _ := strings.Cut(file.ContentType, ";")

		if slices.Contains(SupportedMimeTypes, strings.TrimSpace(mediaType)) {
			return true
		}
	}

	return false
}
