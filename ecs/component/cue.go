package component

const (
	CueCoin       = "coin"
	CueGameOver   = "game_over"
	CueWin        = "win"
	CueBackground = "background"
)

// CueRequest is a one-shot entity asking the audio layer to start or stop a
// named cue. Requests are consumed every frame.
type CueRequest struct {
	Name string
	Stop bool
	Loop bool
}

var CueRequestComponent = NewComponent[CueRequest]()
