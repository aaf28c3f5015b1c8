// package tasks implements long-running catalog operations with progress reporting.
//
// The core abstraction is ExportEngine, which writes catalog categories to disk with a worker pool.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/shared"
)

// CategoryExportResult describes the files written for one category.
type CategoryExportResult struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Tracks   int      `json:"tracks"`
	Files    []string `json:"files"`
	Success  bool     `json:"success"`
	Error    error    `json:"-"`
	ErrorMsg string   `json:"error,omitempty"`
}

// ExportResult summarizes a whole export run.
type ExportResult struct {
	Format          string                 `json:"format"`
	OutputDirectory string                 `json:"output_directory"`
	TotalCategories int                    `json:"total_categories"`
	Successful      int                    `json:"successful"`
	Failed          int                    `json:"failed"`
	ManifestPath    string                 `json:"-"`
	Results         []CategoryExportResult `json:"results"` // in catalog order
}

// ExportEngine runs catalog exports.
type ExportEngine struct {
	logger *log.Logger
}

// NewExportEngine creates a new ExportEngine.
func NewExportEngine(logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{logger: shared.WithLogger(logger, "component", "export")}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
