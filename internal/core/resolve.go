package core

import (
	"fmt"

	"github.com/kilupskalvis/unify/internal/models"
)

// Git-style conflict marker tokens. Downstream tooling pattern-matches
// these exact lines, so they must be reproduced bit-exactly.
const (
	ConflictMarkerBegin = "<<<<<<<"
	ConflictMarkerMid   = "======="
	ConflictMarkerEnd   = ">>>>>>>"
)

// DecideFunc resolves one non-equal diff block. The engine never calls
// it for Equal blocks and never performs I/O around the call; whether
// the function blocks on a human or returns instantly is the caller's
// concern. index is the 1-based ordinal of the conflict within the
// current merge.
type DecideFunc func(block models.DiffBlock, ctx models.BlockContext, index int) models.BlockChoice

// BlockOutcome reports what resolving a single block did.
type BlockOutcome struct {
	ConflictResolved bool   // A UseBoth resolution was recorded
	Marked           bool   // Output lines are wrapped in conflict markers
	Warning          string // Non-empty when an invalid choice degraded to Skip
}

// ResolveBlock turns one diff block into output lines.
//
// Equal blocks pass through unchanged without consulting decide.
// Insert and Delete blocks default to keeping their lines unless decide
// says otherwise. Replace blocks always ask: UseLeft and UseRight pick
// a side, Skip emits nothing, and UseBoth emits both sides bracketed by
// conflict markers. A choice that is invalid for the block's kind is
// treated as Skip and reported as a warning, never a panic.
func ResolveBlock(block models.DiffBlock, ctx models.BlockContext, index int, decide DecideFunc) ([]string, BlockOutcome) {
	var out BlockOutcome

	if block.Kind == models.BlockEqual {
		return block.LinesLeft, out
	}

	choice := decide(block, ctx, index)
	if !choice.ValidFor(block.Kind) {
		out.Warning = fmt.Sprintf("choice %q is not valid for a %s block, skipping", choice, block.Kind)
		return nil, out
	}

	switch choice {
	case models.ChoiceInclude:
		return block.LinesRight, out
	case models.ChoiceKeep:
		return block.LinesLeft, out
	case models.ChoiceRemove, models.ChoiceSkip:
		return nil, out
	case models.ChoiceUseLeft:
		return block.LinesLeft, out
	case models.ChoiceUseRight:
		return block.LinesRight, out
	case models.ChoiceUseBoth:
		out.ConflictResolved = true
		out.Marked = true
		lines := make([]string, 0, len(block.LinesLeft)+len(block.LinesRight)+3)
		lines = append(lines, ConflictMarkerBegin)
		lines = append(lines, block.LinesLeft...)
		lines = append(lines, ConflictMarkerMid)
		lines = append(lines, block.LinesRight...)
		lines = append(lines, ConflictMarkerEnd)
		return lines, out
	}

	out.Warning = fmt.Sprintf("unknown choice %q, skipping", choice)
	return nil, out
}

// PreferLeft reproduces the left file: inserted right-only lines are
// skipped, deleted left-only lines kept, replacements take the left side.
func PreferLeft(block models.DiffBlock, _ models.BlockContext, _ int) models.BlockChoice {
	switch block.Kind {
	case models.BlockInsert:
		return models.ChoiceSkip
	case models.BlockDelete:
		return models.ChoiceKeep
	default:
		return models.ChoiceUseLeft
	}
}

// PreferRight reproduces the right file.
func PreferRight(block models.DiffBlock, _ models.BlockContext, _ int) models.BlockChoice {
	switch block.Kind {
	case models.BlockInsert:
		return models.ChoiceInclude
	case models.BlockDelete:
		return models.ChoiceRemove
	default:
		return models.ChoiceUseRight
	}
}

// Union keeps every line from both sides; replacements are emitted
// inside conflict markers for later manual resolution.
func Union(block models.DiffBlock, _ models.BlockContext, _ int) models.BlockChoice {
	switch block.Kind {
	case models.BlockInsert:
		return models.ChoiceInclude
	case models.BlockDelete:
		return models.ChoiceKeep
	default:
		return models.ChoiceUseBoth
	}
}
