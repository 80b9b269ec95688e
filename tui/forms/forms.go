// Package forms provides huh-based form components.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmOverwriteForm creates a huh confirm form asking whether to
// overwrite an existing file. The result pointer is bound to the confirm
// field value.
func NewConfirmOverwriteForm(path string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing file?").
				Description(fmt.Sprintf("%s already exists.", path)).
				Affirmative("Yes, overwrite").
				Negative("No, cancel").
				Value(overwrite),
		),
	).WithTheme(Theme())
}
