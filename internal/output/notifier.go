package output

// Notifier routes workflow notifications onto the console via Splog.
// It implements workflow.Notifier.
type Notifier struct {
	splog *Splog
}

// NewNotifier creates a notifier backed by the given splog
func NewNotifier(splog *Splog) *Notifier {
	return &Notifier{splog: splog}
}

// ShowError surfaces an error notification
func (n *Notifier) ShowError(message string) {
	n.splog.Error("%s", message)
}

// ShowMessage surfaces an informational notification
func (n *Notifier) ShowMessage(message string) {
	n.splog.Info("%s", message)
}
