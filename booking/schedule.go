package booking

// Schedule is the handle of a repeating task driven by an external timer.
// Each Start hands out a token; the timer presents the token on every tick
// and the tick is honoured only while the token is current. Stop
// invalidates any token in flight.
type Schedule struct {
	token  uint64
	active bool
}

func (s *Schedule) Start() uint64 {
	s.token++
	s.active = true
	return s.token
}

func (s *Schedule) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.token++
}

func (s *Schedule) Active() bool {
	return s.active
}

func (s *Schedule) Accept(token uint64) bool {
	return s.active && token == s.token
}
