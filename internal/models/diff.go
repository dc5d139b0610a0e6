package models

// BlockKind classifies a diff block
type BlockKind string

const (
	BlockEqual   BlockKind = "equal"   // Lines identical on both sides
	BlockInsert  BlockKind = "insert"  // Lines present only on the right
	BlockDelete  BlockKind = "delete"  // Lines present only on the left
	BlockReplace BlockKind = "replace" // Both sides differ at the same alignment point
)

// DiffBlock is a maximal run of aligned lines between two texts.
// Concatenating LinesLeft over all blocks reconstructs the left input
// exactly; same for LinesRight. Line numbers are 1-based and empty on
// a side that contributes nothing.
type DiffBlock struct {
	Kind         BlockKind
	LinesLeft    []string
	LinesRight   []string
	NumbersLeft  []int
	NumbersRight []int
}

// IsConflict reports whether the block needs a decision before it can
// contribute output lines. Equal blocks pass through untouched.
func (b *DiffBlock) IsConflict() bool {
	return b.Kind != BlockEqual
}

// BlockContext carries up to N surrounding lines on each side of a block,
// clipped at file boundaries. Display-only; no effect on merge semantics.
type BlockContext struct {
	BeforeLeft  []string
	AfterLeft   []string
	BeforeRight []string
	AfterRight  []string
}
