package models

import "time"

// FileSimilarity scores how alike two versions are, in [0, 1].
type FileSimilarity struct {
	PathLeft  string
	PathRight string
	Score     float64
}

// Percent returns the score scaled to 0-100 for display.
func (s FileSimilarity) Percent() float64 {
	return s.Score * 100
}

// ConflictMarkerSpan marks a half-open range [Start, End) of merged lines
// occupied by one conflict-marker block, including the marker lines.
type ConflictMarkerSpan struct {
	Start int
	End   int
}

// MergeResult is the outcome of merging two line sequences.
type MergeResult struct {
	MergedLines       []string
	Conflicts         []ConflictMarkerSpan // Spans wrapped in conflict markers
	ConflictsResolved int                  // Count of UseBoth resolutions
	Warnings          []string             // Non-fatal issues, e.g. invalid choices
}

// MergeSessionStatus is a snapshot emitted to the status collaborator
// after each pair selection.
type MergeSessionStatus struct {
	Iteration       int
	RemainingGroups int
	MostSimilarPair *FileSimilarity
	CompletedMerges int
}

// MergeOperationSummary records one completed pairwise merge step.
type MergeOperationSummary struct {
	OperationNumber   int     `json:"operation_number"`
	PathLeft          string  `json:"path_left"`
	PathRight         string  `json:"path_right"`
	SimilarityScore   float64 `json:"similarity_score"`
	FilesAffected     int     `json:"files_affected"`
	ConflictsResolved int     `json:"conflicts_resolved"`
	MergedLineCount   int     `json:"merged_line_count"`
}

// MergeCompletionResult is returned at the end of every session run,
// whether it completed, was cancelled, or failed. Partial progress is
// reported, never discarded.
type MergeCompletionResult struct {
	Success              bool                    `json:"success"`
	InitialGroupCount    int                     `json:"initial_group_count"`
	TotalMergeOperations int                     `json:"total_merge_operations"`
	TotalFilesMerged     int                     `json:"total_files_merged"`
	FinalLineCount       int                     `json:"final_line_count"`
	Operations           []MergeOperationSummary `json:"operations"`
	Warnings             []string                `json:"warnings,omitempty"`
}

// RunRecord is a persisted session outcome.
type RunRecord struct {
	ID        int64
	Pattern   string
	Root      string
	Timestamp time.Time
	Result    MergeCompletionResult
}

// Batch is a saved reconciliation job: where to look and how to resolve.
type Batch struct {
	Name      string
	Root      string
	Pattern   string
	Policy    string // "interactive", "left", "right" or "union"
	CreatedAt time.Time
}
