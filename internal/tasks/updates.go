package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PrepareExport Phase = iota
	ExportCategory
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case PrepareExport:
		return "prepare_export"
	case ExportCategory:
		return "export_category"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func prepareExportUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrepareExport,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d categories to %s...", total, dir),
	}
}

func exportingCategoryUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, res CategoryExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d tracks)", step, total, res.Name, res.Tracks),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCategory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s", path),
	}
}
