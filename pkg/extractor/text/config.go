package text

var SupportedExtensions = []string{
	".txt",
	".csv",
	".tsv",

	".json",
	".xml",
	".yaml",
	".yml",

	".log",
	".md",
	".rst",
}

var SupportedMimeTypes = []string{
	"text/plain",
	"text/markdown",

	"text/csv",
	"text/tab-separated-values",

	"application/json",
	"application/xml",
	"application/yaml",
}
