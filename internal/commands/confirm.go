package commands

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/scramble-dev/scramble/internal/scramble"
)

// batchDecision is the user's answer to a batch confirmation prompt.
type batchDecision string

const (
	batchProceed batchDecision = "proceed"
	batchSkip    batchDecision = "skip"
	batchHalt    batchDecision = "halt"
)

// isInteractive reports whether stdin is attached to a terminal. Prompts
// degrade to their defaults otherwise.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmBatch asks whether to rename the displayed batch. Non-interactive
// runs proceed.
func confirmBatch(title string) (batchDecision, error) {
	if !isInteractive() {
		return batchProceed, nil
	}

	decision := batchProceed
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[batchDecision]().
			Title(title).
			Options(
				huh.NewOption("proceed", batchProceed),
				huh.NewOption("skip", batchSkip),
				huh.NewOption("halt", batchHalt),
			).
			Value(&decision),
	))

	if err := form.Run(); err != nil {
		return batchHalt, err
	}
	return decision, nil
}

// errorRecoveryPrompt asks the user how to handle a per-file error.
// Non-interactive runs skip the file.
func errorRecoveryPrompt(title string) (scramble.Recovery, error) {
	if !isInteractive() {
		return scramble.RecoverySkip, nil
	}

	recovery := scramble.RecoverySkip
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[scramble.Recovery]().
			Title(title).
			Options(
				huh.NewOption("skip", scramble.RecoverySkip),
				huh.NewOption("retry", scramble.RecoveryRetry),
				huh.NewOption("halt", scramble.RecoveryHalt),
			).
			Value(&recovery),
	))

	if err := form.Run(); err != nil {
		return scramble.RecoveryHalt, err
	}
	return recovery, nil
}
