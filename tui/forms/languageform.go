package forms

import (
	"github.com/charmbracelet/huh"
)

// languageOptions are the transcription languages offered by the picker.
var languageOptions = []huh.Option[string]{
	huh.NewOption("English", "en"),
	huh.NewOption("Spanish", "es"),
	huh.NewOption("French", "fr"),
	huh.NewOption("German", "de"),
	huh.NewOption("Italian", "it"),
	huh.NewOption("Portuguese", "pt"),
	huh.NewOption("Dutch", "nl"),
	huh.NewOption("Japanese", "ja"),
	huh.NewOption("Korean", "ko"),
	huh.NewOption("Chinese", "zh"),
	huh.NewOption("Auto-detect", ""),
}

// NewLanguageForm creates a huh select form for picking the transcription
// language. The result pointer is bound to the selected value.
func NewLanguageForm(language *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription language").
				Description("Language hint sent to the transcription service.").
				Options(languageOptions...).
				Value(language),
		),
	).WithTheme(Theme())
}
