package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when the user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// ConfirmMerge asks the user to approve replacing the live data file.
// Returns ErrAborted when declined or cancelled.
func ConfirmMerge(target string, records int) error {
	confirm := false
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Replace %s?", target)).
		Description(fmt.Sprintf("The composed zone carries %d DHCP-leased record(s). The current file contents will be lost.", records)).
		Affirmative("Yes, replace").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(accessibleMode(), huh.NewGroup(field)); err != nil {
		return err
	}
	if !confirm {
		return ErrAborted
	}
	return nil
}

// RunWithSpinner runs action under a terminal spinner. Cancelling maps
// to ErrAborted.
func RunWithSpinner(title string, action func(context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(accessibleMode()).
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func accessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}
