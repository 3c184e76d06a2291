package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/extractor/mineru"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/extract", h.handleExtract)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}

func errorStatus(err error) int {
	var inputErr *mineru.InputError
	var taskErr *mineru.TaskError
	var timeoutErr *mineru.TimeoutError

	switch {
	case errors.Is(err, extractor.ErrUnsupported), errors.As(err, &inputErr):
		return http.StatusBadRequest

	case errors.Is(err, mineru.ErrNotConfigured):
		return http.StatusServiceUnavailable

	case errors.As(err, &taskErr):
		return http.StatusUnprocessableEntity

	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
