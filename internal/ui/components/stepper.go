package components

import (
	"fmt"
	"strings"

	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

// Stepper renders the upload → analyzing → results indicator
type Stepper struct {
	Palette Palette
}

// Render marks steps before current as done and current as active
func (s Stepper) Render(current workflow.State) string {
	parts := make([]string, 0, len(workflow.States)*2)
	for i, state := range workflow.States {
		var label string
		switch {
		case state.Index() < current.Index():
			label = s.Palette.Success.Render(fmt.Sprintf("%s %s", emoji.GetEmoji("success"), state.Title()))
		case state == current:
			label = s.Palette.Active.Render(fmt.Sprintf("(%d) %s", i+1, state.Title()))
		default:
			label = s.Palette.Muted.Render(fmt.Sprintf("(%d) %s", i+1, state.Title()))
		}
		parts = append(parts, label)

		if i < len(workflow.States)-1 {
			connector := s.Palette.Muted.Render(" ── ")
			if state.Index() < current.Index() {
				connector = s.Palette.Success.Render(" ── ")
			}
			parts = append(parts, connector)
		}
	}
	return strings.Join(parts, "")
}
