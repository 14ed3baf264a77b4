package cli

import (
	"github.com/lynx-community/create-lynx-app/internal/scaffold"
	"github.com/lynx-community/create-lynx-app/internal/ui"
)

// spinnerReporter shows the activity of the current stage on a spinner.
type spinnerReporter struct {
	spinner ui.Spinner
}

func (r spinnerReporter) Starting(stage scaffold.Stage) {
	if stage == scaffold.StageDone {
		return
	}
	r.spinner.SetTitle(stage.Activity() + "...")
}

func (r spinnerReporter) Reached(scaffold.Stage) {}
