package mineru

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrNotConfigured = errors.New("mineru: api key not configured")
)

type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// InputError reports a malformed request detected before anything is sent.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return "mineru: " + e.Message + ": " + e.Err.Error()
	}

	return "mineru: " + e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// RemoteError covers transport failures, non-2xx responses and envelopes
// the service marked as unsuccessful.
type RemoteError struct {
	StatusCode int

	Code    int
	Message string

	Err error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0:
		text := http.StatusText(e.StatusCode)

		if e.Message != "" {
			text = e.Message
		}

		return fmt.Sprintf("mineru: request failed: HTTP %d: %s", e.StatusCode, text)

	case e.Err != nil:
		return "mineru: request failed: " + e.Err.Error()

	case e.Code != 0:
		return fmt.Sprintf("mineru: api error %d: %s", e.Code, e.Message)
	}

	return "mineru: " + e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// TaskError is returned when the service reports the task as failed.
type TaskError struct {
	TaskID  string
	Message string
}

func (e *TaskError) Error() string {
	return "mineru: task " + e.TaskID + " failed: " + e.Message
}

type TimeoutError struct {
	TaskID  string
	MaxWait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("mineru: task %s not finished within %s", e.TaskID, e.MaxWait)
}

func (e *TimeoutError) Timeout() bool {
	return true
}
