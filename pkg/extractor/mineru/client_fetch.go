package mineru

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Fetch returns the markdown produced by a finished task. Download and
// unpacking failures are logged and yield an empty string.
func (c *Client) Fetch(ctx context.Context, task *Task) string {
	if task == nil {
		return ""
	}

	location := task.ArtifactURL()

	if location == "" {
		return task.Markdown
	}

	content, err := c.download(ctx, location)

	if err != nil {
		c.logger.Error("mineru artifact download failed", "task", task.ID, "url", location, "error", err)
		return ""
	}

	return content
}

func (c *Client) download(ctx context.Context, location string) (string, error) {
	// artifacts are usually served from a different host than the api
	client := newHTTPClient(c.timeout)
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)

	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.New(http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return "", err
	}

	if isArchive(location) {
		return readArchive(data)
	}

	return string(data), nil
}

func isArchive(location string) bool {
	if u, err := url.Parse(location); err == nil {
		return strings.HasSuffix(u.Path, ".zip")
	}

	return strings.HasSuffix(location, ".zip")
}

func readArchive(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))

	if err != nil {
		return "", err
	}

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".md") {
			continue
		}

		rc, err := f.Open()

		if err != nil {
			return "", err
		}

		defer rc.Close()

		content, err := io.ReadAll(rc)

		if err != nil {
			return "", err
		}

		if !utf8.Valid(content) {
			return "", errors.New("invalid utf-8 in " + f.Name)
		}

		return string(content), nil
	}

	return "", nil
}
