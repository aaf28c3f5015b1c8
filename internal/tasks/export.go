package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"golang.org/x/time/rate"
)

// Export formats understood by [ExportEngine.Export].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

const manifestName = "export_manifest.json"

var extensions = map[string]string{
	FormatJSON:     ".json",
	FormatCSV:      ".csv",
	FormatMarkdown: ".md",
	FormatText:     ".txt",
}

// ExportOpts contains configuration for catalog exports.
type ExportOpts struct {
	Format     string  // json, csv, markdown or text (default: json)
	OutputDir  string  // created if missing
	NumWorkers int     // concurrent writers (default: 4, max: 10)
	RateLimit  float64 // category writes started per second; 0 means unlimited
}

type exportJob struct {
	index    int
	category models.Category
}

// Export writes one file per category into opts.OutputDir, then a manifest listing every result.
//
// A category that fails to write is recorded in the result and does not stop the others. Cancelling ctx stops
// scheduling new categories and returns the partial result with the context error.
func (e *ExportEngine) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	categories []models.Category,
	opts ExportOpts,
) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if _, ok := extensions[opts.Format]; !ok {
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, fmt.Errorf("%w: output directory is required", shared.ErrMissingArgument)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	result := &ExportResult{
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		TotalCategories: len(categories),
		Results:         make([]CategoryExportResult, 0, len(categories)),
	}
	total := len(categories)
	e.sendProgress(prog, prepareExportUpdate(total, opts.OutputDir))
	e.logger.Info("starting export", "format", opts.Format, "dir", opts.OutputDir, "categories", total, "workers", opts.NumWorkers)

	jobs := make(chan exportJob, total)
	results := make(chan CategoryExportResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, c := range categories {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(prog, exportingCategoryUpdate(i+1, total, c.Name))
			jobs <- exportJob{index: i, category: c}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Successful++
			e.sendProgress(prog, exportCompletedUpdate(completed, total, res))
		} else {
			result.Failed++
			e.logger.Warn("category export failed", "category", res.Name, "err", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, total, res.Name, res.Error))
		}
	}

	slices.SortFunc(result.Results, func(a, b CategoryExportResult) int { return a.Index - b.Index })

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted after %d of %d categories: %w", completed, total, err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("export complete", "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

// exportWorker is a worker goroutine that exports categories from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- CategoryExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportCategory(job, opts)
	}
}

// exportCategory renders one category in the requested format and writes it.
func (e *ExportEngine) exportCategory(j exportJob, opts ExportOpts) CategoryExportResult {
	result := CategoryExportResult{
		Index:  j.index,
		Name:   j.category.Name,
		Tracks: len(j.category.Tracks),
		Files:  []string{},
	}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatCSV:
		data, err = formatter.ExportToCSV(j.category.Tracks)
	case FormatMarkdown:
		data, err = formatter.ExportToMarkdown([]models.Category{j.category})
	case FormatText:
		data, err = formatter.ExportToText([]models.Category{j.category})
	default:
		data, err = shared.MarshalJSON(j.category, true)
	}
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		result.ErrorMsg = result.Error.Error()
		return result
	}

	path := filepath.Join(opts.OutputDir, FileName(j.index, j.category.Name, opts.Format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		result.Error = fmt.Errorf("%s write failed: %w", opts.Format, err)
		result.ErrorMsg = result.Error.Error()
		return result
	}

	e.logger.Debug("category exported", "category", j.category.Name, "path", path)
	result.Files = []string{path}
	result.Success = true
	return result
}

// FileName returns the export file name for the category at index, e.g. "01-recently-played.json".
func FileName(index int, name, format string) string {
	return fmt.Sprintf("%02d-%s%s", index+1, slugify(name), extensions[format])
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "category"
	}
	return slug
}
