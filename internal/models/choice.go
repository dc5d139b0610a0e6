package models

// BlockChoice is the decision a collaborator returns for a non-equal
// diff block. Which choices are valid depends on the block kind:
// Insert/Delete accept Include|Skip or Keep|Remove, Replace accepts
// UseLeft|UseRight|UseBoth|Skip.
type BlockChoice string

const (
	ChoiceUseLeft  BlockChoice = "use-left"  // Replace: emit left lines
	ChoiceUseRight BlockChoice = "use-right" // Replace: emit right lines
	ChoiceUseBoth  BlockChoice = "use-both"  // Replace: emit both sides inside conflict markers
	ChoiceSkip     BlockChoice = "skip"      // Emit nothing
	ChoiceInclude  BlockChoice = "include"   // Insert: keep the inserted lines
	ChoiceKeep     BlockChoice = "keep"      // Delete: keep the deleted lines
	ChoiceRemove   BlockChoice = "remove"    // Delete: drop the deleted lines
)

// ValidFor reports whether the choice is semantically valid for a block
// of the given kind.
func (c BlockChoice) ValidFor(kind BlockKind) bool {
	switch kind {
	case BlockInsert:
		return c == ChoiceInclude || c == ChoiceSkip
	case BlockDelete:
		return c == ChoiceKeep || c == ChoiceRemove
	case BlockReplace:
		return c == ChoiceUseLeft || c == ChoiceUseRight || c == ChoiceUseBoth || c == ChoiceSkip
	default:
		return false
	}
}
