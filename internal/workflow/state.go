package workflow

// State is the phase of the upload -> analyze -> results workflow
type State int

const (
	StateUpload State = iota
	StateAnalyzing
	StateResults
)

// States lists every state in workflow order
var States = []State{StateUpload, StateAnalyzing, StateResults}

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateAnalyzing:
		return "analyzing"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Title returns the label shown in the step indicator
func (s State) Title() string {
	switch s {
	case StateUpload:
		return "Upload"
	case StateAnalyzing:
		return "Analyzing"
	case StateResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// Index returns the position of s in States
func (s State) Index() int {
	return int(s)
}
