package mineru

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Submit registers a conversion task and returns its identifier.
func (c *Client) Submit(ctx context.Context, req Request) (string, error) {
	body, err := c.buildRequest(req)

	if err != nil {
		return "", err
	}

	if !c.Available() {
		return "", &ConfigError{Err: ErrNotConfigured}
	}

	if req.File != nil {
		c.logger.Info("mineru creating task", "file", req.File.Name, "size", len(req.File.Content))
	} else {
		c.logger.Info("mineru creating task", "url", req.URL)
	}

	data, err := json.Marshal(body)

	if err != nil {
		return "", &RemoteError{Err: err}
	}

	var result envelope[createTaskData]

	if err := c.do(ctx, http.MethodPost, "/extract/task", data, &result); err != nil {
		c.logger.Error("mineru task creation failed", "error", err)
		return "", err
	}

	if result.Code != 0 {
		return "", &RemoteError{Code: result.Code, Message: messageOrDefault(result.Message, "unknown error")}
	}

	if result.Data == nil || result.Data.TaskID == "" {
		return "", &RemoteError{Message: "invalid task id in response"}
	}

	c.logger.Info("mineru task created", "task", result.Data.TaskID)

	return result.Data.TaskID, nil
}

func (c *Client) buildRequest(req Request) (*taskRequest, error) {
	if req.File == nil && req.URL == "" {
		return nil, &InputError{Message: "either file or url is required"}
	}

	if req.File != nil && req.URL != "" {
		return nil, &InputError{Message: "file and url are mutually exclusive"}
	}

	language := req.Language

	if language == "" {
		language = c.language
	}

	body := &taskRequest{
		URL: req.URL,

		OCR:     !req.DisableOCR,
		Formula: !req.DisableFormula,
		Table:   !req.DisableTable,

		Language: language,
	}

	if req.File != nil {
		if len(req.File.Content) == 0 {
			return nil, &InputError{Message: "file is empty"}
		}

		body.File = base64.StdEncoding.EncodeToString(req.File.Content)
		body.FileName = req.File.Name
	}

	return body, nil
}

// Task queries the current state of a task once.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var result envelope[taskData]

	if err := c.do(ctx, http.MethodGet, "/extract/task/"+url.PathEscape(id), nil, &result); err != nil {
		c.logger.Error("mineru task query failed", "task", id, "error", err)
		return nil, err
	}

	if result.Code != 0 {
		return nil, &RemoteError{Code: result.Code, Message: messageOrDefault(result.Message, "unknown error")}
	}

	if result.Data == nil {
		return nil, &RemoteError{Message: "missing task data in response"}
	}

	data := result.Data

	task := &Task{
		ID: id,

		State: data.State,
		Error: data.Error,

		ZipURL:      data.ZipURL,
		MarkdownURL: data.MarkdownURL,
		Markdown:    data.Markdown,

		Pages: data.Pages,
	}

	if data.ProcessingTime != nil {
		task.ProcessingTime = time.Duration(*data.ProcessingTime * float64(time.Second))
	}

	return task, nil
}

// Wait polls a task until it is done, failed, or the maximum wait elapsed.
// A nil options value uses the client's poll interval and maximum wait.
func (c *Client) Wait(ctx context.Context, id string, options *WaitOptions) (*Task, error) {
	interval := c.interval
	maxWait := c.maxWait

	if options != nil {
		if options.PollInterval > 0 {
			interval = options.PollInterval
		}

		if options.MaxWait > 0 {
			maxWait = options.MaxWait
		}
	}

	start := c.now()

	for {
		elapsed := c.now().Sub(start)

		if elapsed > maxWait {
			return nil, &TimeoutError{TaskID: id, MaxWait: maxWait}
		}

		task, err := c.Task(ctx, id)

		if err != nil {
			return nil, err
		}

		switch task.State {
		case StateDone:
			task.Elapsed = elapsed

			c.logger.Info("mineru task finished", "task", id, "elapsed", elapsed)
			return task, nil

		case StateFailed:
			return nil, &TaskError{TaskID: id, Message: messageOrDefault(task.Error, "task failed")}
		}

		c.logger.Debug("mineru task in progress", "task", id, "state", task.State, "elapsed", elapsed)

		if err := c.sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.url, "/")+path, reader)

	if err != nil {
		return &RemoteError{Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)

	if err != nil {
		return &RemoteError{Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return convertError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &RemoteError{Err: err}
	}

	return nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	return &RemoteError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(data)),
	}
}

func messageOrDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}

	return message
}
