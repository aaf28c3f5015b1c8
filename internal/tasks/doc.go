// Package tasks runs long catalog operations off the caller's goroutine with real-time progress reporting.
//
// # Export
//
// [ExportEngine.Export] writes every category to its own file in one format (json, csv, markdown, text).
// Categories are fanned out to a bounded worker pool; a [rate.Limiter] paces how quickly new categories
// are scheduled so a large catalog can be exported to slow or shared storage without saturating it.
//
// Failures are collected per category instead of aborting the run. When the run finishes, a manifest
// (export_manifest.json) summarizing every result is written next to the exported files.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking, so a slow reader drops updates instead of stalling workers.
package tasks
