package types

// ExtractBackend identifies the first-page text extraction tool.
type ExtractBackend string

const (
	// BackendNative parses the PDF in-process.
	BackendNative ExtractBackend = "native"

	// BackendPdftotext shells out to poppler's pdftotext.
	BackendPdftotext ExtractBackend = "pdftotext"
)

// DefaultMaxNameLength bounds the generated filename, extension included.
// Matches the common 255-byte filesystem component limit.
const DefaultMaxNameLength = 255

// RenameConfig holds settings for one batch rename run.
type RenameConfig struct {
	// InputDir is the directory scanned (non-recursively) for PDF files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the destination directory. When it equals InputDir
	// (or is empty) the run renames files in place; otherwise files are
	// copied and the originals are left untouched.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// MaxNameLength bounds generated filenames (default 255).
	MaxNameLength int `json:"max_name_length" yaml:"max_name_length"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the history database
	// (contains name2pdf.db).
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
