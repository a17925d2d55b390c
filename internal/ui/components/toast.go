package components

import (
	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

// Toast renders a transient notice
type Toast struct {
	Palette Palette
}

// Render returns an empty string when there is no notice
func (t Toast) Render(n *workflow.Notice) string {
	if n == nil {
		return ""
	}
	switch n.Level {
	case workflow.NoticeSuccess:
		return t.Palette.Success.Render(emoji.GetEmoji("success") + " " + n.Message)
	case workflow.NoticeError:
		return t.Palette.Error.Render(emoji.GetEmoji("error") + " " + n.Message)
	default:
		return t.Palette.Info.Render(emoji.GetEmoji("info") + " " + n.Message)
	}
}
