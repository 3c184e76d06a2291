package provider

type Provider = any

type File struct {
	Name string

	Content     []byte
	ContentType string
}
