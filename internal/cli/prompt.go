package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kilupskalvis/unify/internal/core"
	"github.com/kilupskalvis/unify/internal/models"
)

// prompter reads merge decisions from the terminal. It implements the
// decision collaborator seam: the core calls its decide method and
// blocks until the user answers.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// decideForPolicy maps a resolution policy name to a decision function.
func decideForPolicy(policy string, p *prompter) (core.DecideFunc, error) {
	switch policy {
	case "interactive":
		return p.decide, nil
	case "left":
		return core.PreferLeft, nil
	case "right":
		return core.PreferRight, nil
	case "union":
		return core.Union, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (expected interactive, left, right or union)", policy)
	}
}

func (p *prompter) decide(block models.DiffBlock, ctx models.BlockContext, index int) models.BlockChoice {
	p.render(block, ctx, index)

	for {
		switch block.Kind {
		case models.BlockInsert:
			fmt.Fprint(p.out, "Lines only in the right file. [i]nclude / [s]kip: ")
		case models.BlockDelete:
			fmt.Fprint(p.out, "Lines only in the left file. [k]eep / [r]emove: ")
		default:
			fmt.Fprint(p.out, "Conflicting lines. [l]eft / [r]ight / [b]oth / [s]kip: ")
		}

		answer, err := p.in.ReadString('\n')
		if err != nil {
			// Stdin closed: fall back to keeping both sides visible.
			return core.Union(block, ctx, index)
		}

		if choice, ok := parseChoice(block.Kind, answer); ok {
			return choice
		}
		fmt.Fprintln(p.out, "Unrecognized choice, try again.")
	}
}

func parseChoice(kind models.BlockKind, answer string) (models.BlockChoice, bool) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	switch kind {
	case models.BlockInsert:
		switch answer {
		case "i", "include":
			return models.ChoiceInclude, true
		case "s", "skip":
			return models.ChoiceSkip, true
		}
	case models.BlockDelete:
		switch answer {
		case "k", "keep":
			return models.ChoiceKeep, true
		case "r", "remove":
			return models.ChoiceRemove, true
		}
	case models.BlockReplace:
		switch answer {
		case "l", "left":
			return models.ChoiceUseLeft, true
		case "r", "right":
			return models.ChoiceUseRight, true
		case "b", "both":
			return models.ChoiceUseBoth, true
		case "s", "skip":
			return models.ChoiceSkip, true
		}
	}
	return "", false
}

// render prints the block with its surrounding context, left side in
// red, right side in green, context dimmed.
func (p *prompter) render(block models.DiffBlock, ctx models.BlockContext, index int) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	fmt.Fprintln(p.out)
	bold.Fprintf(p.out, "--- conflict %d (%s) ---\n", index, block.Kind)

	before := ctx.BeforeLeft
	if len(block.NumbersLeft) == 0 {
		before = ctx.BeforeRight
	}
	for _, line := range before {
		dim.Fprintf(p.out, "       %s\n", line)
	}

	for i, line := range block.LinesLeft {
		red.Fprintf(p.out, "- %4d %s\n", block.NumbersLeft[i], line)
	}
	for i, line := range block.LinesRight {
		green.Fprintf(p.out, "+ %4d %s\n", block.NumbersRight[i], line)
	}

	after := ctx.AfterLeft
	if len(block.NumbersLeft) == 0 {
		after = ctx.AfterRight
	}
	for _, line := range after {
		dim.Fprintf(p.out, "       %s\n", line)
	}
}

// printStatus renders a session snapshot after each pair selection.
func printStatus(status models.MergeSessionStatus) {
	cyan := color.New(color.FgCyan)
	cyan.Printf("\nStep %d: %d versions remaining", status.Iteration, status.RemainingGroups)
	if status.MostSimilarPair != nil {
		fmt.Printf(": merging %s and %s (%.1f%% similar)",
			status.MostSimilarPair.PathLeft,
			status.MostSimilarPair.PathRight,
			status.MostSimilarPair.Percent())
	}
	fmt.Println()
}
