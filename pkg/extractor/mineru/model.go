package mineru

import (
	"time"

	"github.com/adrianliechti/mineru/pkg/provider"
)

type TaskState string

const (
	StateDone   TaskState = "done"
	StateFailed TaskState = "failed"
)

// IsFinal reports whether polling stops at this state. Any value the service
// may add later counts as still in progress.
func (s TaskState) IsFinal() bool {
	return s == StateDone || s == StateFailed
}

type Request struct {
	URL string

	File *provider.File

	DisableOCR     bool
	DisableFormula bool
	DisableTable   bool

	Language string
}

type Task struct {
	ID string

	State TaskState
	Error string

	ZipURL      string
	MarkdownURL string
	Markdown    string

	Pages          int
	ProcessingTime time.Duration

	Elapsed time.Duration
}

// ArtifactURL returns the location of the downloadable output, preferring
// the full archive over the bare markdown file.
func (t *Task) ArtifactURL() string {
	if t.ZipURL != "" {
		return t.ZipURL
	}

	return t.MarkdownURL
}

type Result struct {
	TaskID string

	Content string

	Pages          int
	ProcessingTime time.Duration

	Elapsed time.Duration
}

type WaitOptions struct {
	PollInterval time.Duration
	MaxWait      time.Duration
}

type taskRequest struct {
	URL string `json:"url,omitempty"`

	File     string `json:"file,omitempty"`
	FileName string `json:"file_name,omitempty"`

	OCR     bool `json:"is_ocr"`
	Formula bool `json:"enable_formula"`
	Table   bool `json:"enable_table"`

	Language string `json:"language"`
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"msg,omitempty"`

	Data *T `json:"data"`
}

type createTaskData struct {
	TaskID string `json:"task_id"`
}

type taskData struct {
	State TaskState `json:"state"`

	Error string `json:"err_msg,omitempty"`

	ZipURL      string `json:"full_zip_url,omitempty"`
	MarkdownURL string `json:"md_url,omitempty"`
	Markdown    string `json:"markdown,omitempty"`

	Pages          int      `json:"pages,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
}
