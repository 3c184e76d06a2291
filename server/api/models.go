package api

type Document struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type,omitempty"`

	Pages int `json:"pages,omitempty"`
}
