package text_test

import (
	"context"
	"testing"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/extractor/text"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	e, err := text.New()
	require.NoError(t, err)

	tests := []struct {
		name string
		file extractor.File

		contentType string
		unsupported bool
	}{
		{name: "markdown", file: extractor.File{Name: "notes.md", Content: []byte("# Notes")}, contentType: "text/markdown"},
		{name: "plain", file: extractor.File{Name: "notes", Content: []byte("just some words\nand more")}, contentType: "text/plain"},
		{name: "content type", file: extractor.File{Content: []byte("a,b"), ContentType: "text/csv; charset=utf-8"}, contentType: "text/csv; charset=utf-8"},
		{name: "pdf", file: extractor.File{Name: "scan.pdf", Content: []byte("%PDF-1.7\x00\x01\x02\x03\xff\xfe")}, unsupported: true},
		{name: "empty", file: extractor.File{Name: "blob"}, unsupported: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := e.Extract(context.Background(), extractor.Input{File: &tt.file}, nil)

			if tt.unsupported {
				require.ErrorIs(t, err, extractor.ErrUnsupported)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.contentType, doc.ContentType)
			require.Equal(t, tt.file.Content, doc.Content)
		})
	}
}

func TestExtractURL(t *testing.T) {
	e, err := text.New()
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), extractor.Input{URL: "https://example.com/paper.pdf"}, nil)
	require.ErrorIs(t, err, extractor.ErrUnsupported)
}

func TestExtractPDFSignature(t *testing.T) {
	e, err := text.New()
	require.NoError(t, err)

	file := extractor.File{Name: "upload", Content: []byte("%PDF-1.7")}

	_, err = e.Extract(context.Background(), extractor.Input{File: &file}, nil)
	require.ErrorIs(t, err, extractor.ErrUnsupported)
}
