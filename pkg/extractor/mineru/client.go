package mineru

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/provider"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var _ extractor.Provider = &Client{}

const (
	DefaultURL      = "https://mineru.net/api/v4"
	DefaultLanguage = "ch"

	DefaultTimeout      = 60 * time.Second
	DefaultPollInterval = 3 * time.Second
	DefaultMaxWait      = 300 * time.Second
)

type Client struct {
	client *http.Client

	mu      sync.Mutex
	session *http.Client

	url   string
	token string

	language string

	timeout  time.Duration
	interval time.Duration
	maxWait  time.Duration

	logger *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		url: DefaultURL,

		language: DefaultLanguage,

		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
		maxWait:  DefaultMaxWait,

		logger: slog.Default(),

		now:   time.Now,
		sleep: sleep,
	}

	for _, option := range options {
		option(c)
	}

	if c.token == "" {
		c.logger.Warn("mineru api key not configured, client unavailable")
	} else {
		c.logger.Info("mineru client initialized", "url", c.url)
	}

	return c, nil
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.token != ""
}

// Close releases the pooled connection. It is safe to call more than once;
// the next request opens a new one.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}

	c.session.CloseIdleConnections()
	c.session = nil

	return nil
}

func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		c.session = c.client

		if c.session == nil {
			c.session = newHTTPClient(c.timeout)
		}
	}

	return c.session
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}

// ExtractMarkdown runs a full task lifecycle: submit, wait for a terminal
// state, then fetch the produced markdown.
func (c *Client) ExtractMarkdown(ctx context.Context, req Request) (*Result, error) {
	id, err := c.Submit(ctx, req)

	if err != nil {
		return nil, err
	}

	task, err := c.Wait(ctx, id, nil)

	if err != nil {
		return nil, err
	}

	return &Result{
		TaskID: id,

		Content: c.Fetch(ctx, task),

		Pages:          task.Pages,
		ProcessingTime: task.ProcessingTime,

		Elapsed: task.Elapsed,
	}, nil
}

func (c *Client) Extract(ctx context.Context, input extractor.Input, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	req := Request{
		DisableOCR:     options.DisableOCR,
		DisableFormula: options.DisableFormula,
		DisableTable:   options.DisableTable,

		Language: options.Language,
	}

	switch {
	case input.File != nil:
		if !isSupported(*input.File) {
			return nil, extractor.ErrUnsupported
		}

		file := *input.File

		if file.Name == "" {
			file.Name = uuid.NewString() + ".pdf"
		}

		req.File = &file

	case input.URL != "":
		req.URL = input.URL

	default:
		return nil, extractor.ErrUnsupported
	}

	result, err := c.ExtractMarkdown(ctx, req)

	if err != nil {
		return nil, err
	}

	return &extractor.Document{
		Content:     []byte(result.Content),
		ContentType: "text/markdown",

		Pages: result.Pages,
	}, nil
}

// ReadFile loads a local document for submission.
func ReadFile(name string) (*provider.File, error) {
	info, err := os.Stat(name)

	if err != nil {
		return nil, &InputError{Message: "file not found: " + name, Err: err}
	}

	if info.IsDir() {
		return nil, &InputError{Message: "not a file: " + name}
	}

	data, err := os.ReadFile(name)

	if err != nil {
		return nil, &InputError{Message: "unable to read file: " + name, Err: err}
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &provider.File{
		Name: filepath.Base(name),

		Content:     data,
		ContentType: contentType,
	}, nil
}

func isSupported(file provider.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return http.DetectContentType(file.Content) == "application/pdf"
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()

	case <-t.C:
		return nil
	}
}
