package cli

import (
	"context"
	stderrors "errors"
	"io"

	"tempo-tracker/internal/api"

	"github.com/charmbracelet/huh"
)

// promptConfirmer asks on the terminal before destructive operations
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// NewPromptConfirmer returns a Confirmer backed by a huh yes/no prompt.
// Aborting the prompt (ctrl+c, esc) counts as "no".
func NewPromptConfirmer(in io.Reader, out io.Writer) api.Confirmer {
	return promptConfirmer{in: in, out: out}
}

func (p promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithInput(p.in).WithOutput(p.out)

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
