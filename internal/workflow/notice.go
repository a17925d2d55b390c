package workflow

// NoticeLevel classifies a user-visible notification
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a transient message for the user, like a toast
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives notices emitted by the controller
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

// Notify calls f
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// NoticeRecorder keeps every notice it receives. Useful for headless
// runs and tests.
type NoticeRecorder struct {
	Notices []Notice
}

// Notify appends n
func (r *NoticeRecorder) Notify(n Notice) {
	r.Notices = append(r.Notices, n)
}

// Last returns the most recent notice
func (r *NoticeRecorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
