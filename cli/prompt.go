package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrOutOfRange is returned when an entered number is outside the allowed range.
var ErrOutOfRange = errors.New("value out of range")

// Prompter asks the user questions. Terminal implements it with promptui;
// tests use scripted fakes.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(label string, items []string) (int, error)

	// Confirm asks a yes/no question. Declining is not an error.
	Confirm(label string) (bool, error)

	// Int reads an integer between lo and hi inclusive.
	Int(label string, lo, hi int) (int, error)
}

// Terminal prompts on a terminal. Nil streams mean os.Stdin and os.Stdout.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal returns a Terminal on the process's standard streams.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

func (t *Terminal) stdin() io.ReadCloser {
	if t.In != nil {
		return t.In
	}

	return os.Stdin
}

func (t *Terminal) stdout() io.WriteCloser {
	if t.Out != nil {
		return t.Out
	}

	return os.Stdout
}

// Select shows items as a list and returns the index of the chosen one.
func (t *Terminal) Select(label string, items []string) (int, error) {
	sel := &promptui.Select{
		Label:    label,
		Items:    items,
		Size:     len(items),
		Searcher: prefixSearcher(items),
		Stdin:    t.stdin(),
		Stdout:   t.stdout(),
	}

	idx, _, err := sel.Run()

	return idx, err
}

// Confirm asks a y/N question.
func (t *Terminal) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Int reads an integer in [lo, hi].
func (t *Terminal) Int(label string, lo, hi int) (int, error) {
	validate := intValidator(lo, hi)

	prompt := promptui.Prompt{
		Label:    label,
		Validate: func(s string) error { return validate(s) },
		Stdin:    t.stdin(),
		Stdout:   t.stdout(),
	}

	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	if err := validate(txt); err != nil {
		return 0, err
	}

	return parseInt(txt)
}

func parseInt(s string) (int, error) {
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}

	return int(val), nil
}

func intValidator(lo, hi int) func(string) error {
	return func(s string) error {
		val, err := parseInt(s)
		if err != nil {
			return err
		}

		if val < lo || val > hi {
			return fmt.Errorf("%w: %d is not between %d and %d", ErrOutOfRange, val, lo, hi)
		}

		return nil
	}
}

func prefixSearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" || index < 0 || index >= len(items) {
			return false
		}

		return strings.HasPrefix(strings.ToLower(items[index]), strings.ToLower(input))
	}
}
