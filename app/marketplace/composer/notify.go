package composer

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a message for the user shown on the next render.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (w *Workspace) notify(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notifications = append(w.notifications, n)
}

// Notifications drains the queue of pending notifications.
func (w *Workspace) Notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.notifications
	w.notifications = nil
	return out
}
