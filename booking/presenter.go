package booking

import "cinemahall-cli/model"

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is a user-visible transient message. Sticky notices stay until
// the user acknowledges them.
type Notice struct {
	Text   string
	Level  NoticeLevel
	Sticky bool
}

// View is everything the seat map needs to draw itself.
type View struct {
	ShowID    int
	Layout    *Layout
	Display   map[int]DisplayStatus
	Selection Selection
	State     State
}

func (v View) PayLabel() string {
	switch v.State {
	case StateRequesting:
		return "Processing..."
	case StateHeld:
		return "Confirm Payment"
	case StateConfirming:
		return "Confirming..."
	case StateConfirmed:
		return "Booked"
	case StateExpired:
		return "Expired"
	default:
		return "Proceed to Pay"
	}
}

func (v View) PayEnabled() bool {
	return v.State == StateIdle || v.State == StateHeld
}

// Presenter receives everything a session wants shown. Calls happen on the
// goroutine that drives the session.
type Presenter interface {
	Render(View)
	Notice(Notice)
	Countdown(text string)
	Booked(model.Booking)
}
