package api

import (
	"errors"
	"net/http"

	"github.com/adrianliechti/mineru/pkg/extractor"
)

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	model := valueModel(r)

	p, err := h.Extractor(model)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input := extractor.Input{}

	if url := valueURL(r); url != "" {
		input.URL = url
	} else if file, err := h.readFile(r); err == nil {
		input.File = file
	}

	if input.URL == "" && input.File == nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid input"))
		return
	}

	options := &extractor.ExtractOptions{
		Language: valueLanguage(r),

		DisableOCR:     valueDisabled(r, "ocr"),
		DisableFormula: valueDisabled(r, "formula"),
		DisableTable:   valueDisabled(r, "table"),
	}

	result, err := p.Extract(r.Context(), input, options)

	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}

	if valueFormat(r) == "json" {
		writeJson(w, Document{
			Text:        result.Text(),
			ContentType: result.ContentType,

			Pages: result.Pages,
		})

		return
	}

	contentType := result.ContentType

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(result.Content)
}
