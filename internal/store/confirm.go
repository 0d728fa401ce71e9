package store

import "context"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

const (
	RemovePrompt = "Delete this task?"
	ClearPrompt  = "Clear all tasks?"
)

// RemoveConfirmed asks c before removing id. A declined prompt or a prompt
// error leaves the store unchanged.
func (s *Store) RemoveConfirmed(ctx context.Context, id string, c Confirmer) (bool, error) {
	if s.IndexOf(id) < 0 {
		return false, nil
	}
	ok, err := c.Confirm(RemovePrompt)
	if err != nil || !ok {
		return false, err
	}
	return s.Remove(ctx, id)
}

func (s *Store) ClearConfirmed(ctx context.Context, c Confirmer) (bool, error) {
	ok, err := c.Confirm(ClearPrompt)
	if err != nil || !ok {
		return false, err
	}
	return s.Clear(ctx)
}
