// Package progress simulates the staged progress shown while a document
// is being "analyzed". The simulator is a plain state object: callers
// advance it once per timer tick and render its snapshots. It does no
// work of its own.
package progress

const (
	// MaxPercent is where the counter stops
	MaxPercent = 100

	// DefaultStep is the increment applied on every tick
	DefaultStep = 2
)

// Stage is an illustrative label for one slice of the progress bar
type Stage struct {
	Name        string
	Description string
	Icon        string // emoji key
}

// DefaultStages are the five equal-width stages of a compliance review
var DefaultStages = []Stage{
	{Name: "Document Processing", Description: "Extracting and parsing document content", Icon: "document"},
	{Name: "Regulation Mapping", Description: "Identifying applicable banking regulations", Icon: "search"},
	{Name: "Compliance Assessment", Description: "Analyzing compliance requirements", Icon: "shield"},
	{Name: "Risk Evaluation", Description: "Evaluating potential compliance risks", Icon: "warning"},
	{Name: "Report Generation", Description: "Generating comprehensive analysis report", Icon: "success"},
}

// StageStatus is the display state of a stage
type StageStatus int

const (
	StagePending StageStatus = iota
	StageCurrent
	StageCompleted
)

func (s StageStatus) String() string {
	switch s {
	case StageCurrent:
		return "current"
	case StageCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Simulator holds the counter and stage statuses of one analysis run
type Simulator struct {
	stages   []Stage
	step     int
	percent  int
	statuses []StageStatus
}

// New creates a simulator at 0%. A non-positive step falls back to
// DefaultStep; an empty stage list falls back to DefaultStages.
func New(stages []Stage, step int) *Simulator {
	if len(stages) == 0 {
		stages = DefaultStages
	}
	if step <= 0 {
		step = DefaultStep
	}

	s := &Simulator{
		stages:   stages,
		step:     step,
		statuses: make([]StageStatus, len(stages)),
	}
	s.updateStages()
	return s
}

// Advance applies one tick. It reports whether the state changed, which
// is false only once the counter has reached MaxPercent.
func (s *Simulator) Advance() bool {
	if s.Done() {
		return false
	}

	s.percent += s.step
	if s.percent > MaxPercent {
		s.percent = MaxPercent
	}
	s.updateStages()
	return true
}

// updateStages maps the counter onto equal-width buckets. Every stage
// before the bucket is completed and the bucket's own stage is current.
func (s *Simulator) updateStages() {
	bucket := s.Bucket()
	for i := range s.statuses {
		switch {
		case i < bucket:
			s.statuses[i] = StageCompleted
		case i == bucket:
			s.statuses[i] = StageCurrent
		default:
			s.statuses[i] = StagePending
		}
	}
}

// Bucket returns the index of the bucket the counter is in. It equals
// the number of stages once the counter is at MaxPercent.
func (s *Simulator) Bucket() int {
	n := len(s.stages)
	bucket := s.percent * n / MaxPercent
	if bucket > n {
		bucket = n
	}
	return bucket
}

// Percent returns the counter value
func (s *Simulator) Percent() int {
	return s.percent
}

// Done reports whether the counter reached MaxPercent
func (s *Simulator) Done() bool {
	return s.percent >= MaxPercent
}

// Stages returns the stage definitions
func (s *Simulator) Stages() []Stage {
	return s.stages
}

// TicksToComplete returns how many Advance calls a fresh simulator needs
func (s *Simulator) TicksToComplete() int {
	return (MaxPercent + s.step - 1) / s.step
}

// Snapshot is an immutable copy of the simulator state for rendering
type Snapshot struct {
	Percent  int
	Current  int // index of the current stage, -1 when all are completed
	Statuses []StageStatus
}

// Snapshot copies the current state
func (s *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Percent:  s.percent,
		Current:  -1,
		Statuses: append([]StageStatus(nil), s.statuses...),
	}
	if b := s.Bucket(); b < len(s.stages) {
		snap.Current = b
	}
	return snap
}

// Completed counts completed stages in the snapshot
func (s Snapshot) Completed() int {
	n := 0
	for _, st := range s.Statuses {
		if st == StageCompleted {
			n++
		}
	}
	return n
}
