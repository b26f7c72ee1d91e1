package component

// Input stores per-frame intents. Pressed flags are edge-triggered: they are
// true only on the frame the key went down.
type Input struct {
	LeftPressed        bool
	RightPressed       bool
	UpPressed          bool
	DownPressed        bool
	HorizontalReleased bool
	StartPressed       bool
	RestartPressed     bool
}

var InputComponent = NewComponent[Input]()

// Clear drops every intent.
func (i *Input) Clear() {
	*i = Input{}
}

// Merge ORs the intents of o into i.
func (i *Input) Merge(o Input) {
	i.LeftPressed = i.LeftPressed || o.LeftPressed
	i.RightPressed = i.RightPressed || o.RightPressed
	i.UpPressed = i.UpPressed || o.UpPressed
	i.DownPressed = i.DownPressed || o.DownPressed
	i.HorizontalReleased = i.HorizontalReleased || o.HorizontalReleased
	i.StartPressed = i.StartPressed || o.StartPressed
	i.RestartPressed = i.RestartPressed || o.RestartPressed
}
