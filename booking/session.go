package booking

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"cinemahall-cli/model"
	"github.com/google/uuid"
)

// SeatsRequest tags a seat fetch with the flow and show it was issued for.
type SeatsRequest struct {
	SessionID string
	ShowID    int
	Seq       uint64
}

type HoldCall struct {
	Attempt uint64
	Request model.HoldRequest
}

type ConfirmCall struct {
	Attempt uint64
	Request model.ConfirmRequest
}

// Followup is work a session result asks the driver to schedule.
type Followup struct {
	Refetch        *SeatsRequest
	CountdownToken uint64
}

// Session owns the state of one seat-selection flow for one show: the
// selection, the hold lifecycle, the seat layout and the two schedules
// (seat polling and the hold countdown). It is created when the user
// opens a show and closed when they leave it. A session is not safe for
// concurrent use; drive it from a single event loop.
type Session struct {
	id        string
	movie     model.Movie
	email     string
	presenter Presenter
	log       *slog.Logger

	selection *SelectionStore
	lifecycle Lifecycle
	layout    *Layout
	display   map[int]DisplayStatus
	booking   *model.Booking

	poll      Schedule
	countdown Schedule
	seq       uint64
	applied   uint64
	closed    bool
}

func NewSession(movie model.Movie, email string, presenter Presenter, logger *slog.Logger) *Session {
	id := uuid.NewString()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		id:        id,
		movie:     movie,
		email:     email,
		presenter: presenter,
		log:       logger.With(slog.String("session_id", id), slog.Int("show_id", movie.ShowId)),
		selection: NewSelectionStore(),
		display:   make(map[int]DisplayStatus),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Movie() model.Movie {
	return s.movie
}

func (s *Session) State() State {
	return s.lifecycle.State()
}

func (s *Session) Selection() Selection {
	return s.selection.Snapshot()
}

func (s *Session) Hold() (Hold, bool) {
	return s.lifecycle.Hold()
}

func (s *Session) Booking() (model.Booking, bool) {
	if s.booking == nil {
		return model.Booking{}, false
	}
	return *s.booking, true
}

func (s *Session) Polling() bool {
	return s.poll.Active()
}

func (s *Session) CountingDown() bool {
	return s.countdown.Active()
}

func (s *Session) Closed() bool {
	return s.closed
}

// View returns the current seat map state.
func (s *Session) View() View {
	display := make(map[int]DisplayStatus, len(s.display))
	for id, status := range s.display {
		display[id] = status
	}
	return View{
		ShowID:    s.movie.ShowId,
		Layout:    s.layout,
		Display:   display,
		Selection: s.selection.Snapshot(),
		State:     s.lifecycle.State(),
	}
}

// Open starts seat polling. It returns the first fetch to issue right away
// and the poll token the driver's timer must present on each tick.
func (s *Session) Open() (SeatsRequest, uint64) {
	token := s.poll.Start()
	s.log.Debug("seat selection opened")
	return s.nextRequest(), token
}

// PollTick is called on every poll timer tick. It returns false when the
// token no longer belongs to the running poll; the driver must then stop
// rescheduling.
func (s *Session) PollTick(token uint64) (SeatsRequest, bool) {
	if s.closed || !s.poll.Accept(token) {
		return SeatsRequest{}, false
	}
	return s.nextRequest(), true
}

func (s *Session) nextRequest() SeatsRequest {
	s.seq++
	return SeatsRequest{SessionID: s.id, ShowID: s.movie.ShowId, Seq: s.seq}
}

// ApplySeats merges a server snapshot. The first snapshot builds the
// layout; later ones update seat statuses in place. Selected seats taken
// by someone else while no hold covers them are dropped with a notice.
func (s *Session) ApplySeats(req SeatsRequest, seats []model.Seat) error {
	if err := s.accepts(req); err != nil {
		s.log.Debug("seat snapshot discarded", slog.Uint64("seq", req.Seq), slog.Int("for_show", req.ShowID))
		return err
	}
	s.applied = req.Seq

	if s.layout == nil || s.layout.Len() == 0 {
		s.layout = BuildLayout(s.movie.ShowId, seats)
	} else {
		if unknown := s.layout.Update(seats); unknown > 0 {
			s.log.Debug("seat snapshot has seats outside the layout", slog.Int("unknown", unknown))
		}
		seats = s.layout.Known(seats)
	}

	result := Reconcile(seats, s.selection, s.lifecycle.HoldActive())
	for _, seat := range result.Raced {
		if !s.selection.ForceRemove(seat.Id) {
			continue
		}
		s.log.Info("selected seat taken", slog.Int("seat_id", seat.Id), slog.String("status", string(seat.Status)))
		s.presenter.Notice(Notice{Text: fmt.Sprintf("Seat %s just taken!", seat.Label()), Level: NoticeError})
	}
	for id, status := range result.Display {
		s.display[id] = status
	}
	s.render()
	return nil
}

// SeatsFailed records a failed fetch. Polling is best effort: nothing is
// shown to the user and the next tick tries again.
func (s *Session) SeatsFailed(req SeatsRequest, err error) {
	if s.accepts(req) != nil {
		return
	}
	s.log.Warn("seat poll failed", slog.Uint64("seq", req.Seq), slog.String("error", err.Error()))
}

func (s *Session) accepts(req SeatsRequest) error {
	if s.closed || req.SessionID != s.id || req.ShowID != s.movie.ShowId {
		return ErrStaleResponse
	}
	if req.Seq <= s.applied {
		return ErrStaleResponse
	}
	switch s.lifecycle.State() {
	case StateConfirmed, StateExpired:
		return ErrStaleResponse
	}
	return nil
}

// Toggle flips a seat in or out of the selection.
func (s *Session) Toggle(seatID int) error {
	if s.layout == nil {
		return fmt.Errorf("%w: seat map not loaded", ErrRejected)
	}
	seat, ok := s.layout.Seat(seatID)
	if !ok {
		return fmt.Errorf("%w: unknown seat %d", ErrRejected, seatID)
	}
	selected, err := s.selection.Toggle(seat.Id, seat.Price, seat.Status, s.lifecycle.Frozen())
	if err != nil {
		return err
	}
	if selected {
		s.display[seat.Id] = DisplaySelected
	} else {
		s.display[seat.Id] = DisplayFor(seat.Status)
	}
	s.render()
	return nil
}

// RequestHold starts a hold for the current selection. An empty selection
// is refused locally with a notice and never reaches the network.
func (s *Session) RequestHold() (HoldCall, error) {
	if s.closed {
		return HoldCall{}, ErrStaleResponse
	}
	ids := s.selection.IDs()
	attempt, err := s.lifecycle.RequestHold(ids)
	if errors.Is(err, ErrEmptySelection) {
		s.presenter.Notice(Notice{Text: "Please select seats first", Level: NoticeError})
		return HoldCall{}, err
	}
	if err != nil {
		return HoldCall{}, err
	}
	s.log.Info("hold requested", slog.Any("seat_ids", ids))
	s.render()
	return HoldCall{
		Attempt: attempt,
		Request: model.HoldRequest{ShowId: s.movie.ShowId, SeatIds: ids, UserEmail: s.email},
	}, nil
}

// ApplyHold handles the hold response. A conflict sends the flow back to
// Idle with the selection untouched and asks for an immediate seat
// refresh; a grant starts the countdown.
func (s *Session) ApplyHold(attempt uint64, resp model.HoldResponse, err error, now time.Time) (Followup, error) {
	if s.closed {
		return Followup{}, ErrStaleResponse
	}
	if err != nil {
		if derr := s.lifecycle.HoldDenied(attempt); derr != nil {
			return Followup{}, derr
		}
		if errors.Is(err, ErrConflict) {
			s.log.Info("hold conflict", slog.String("error", err.Error()))
			s.presenter.Notice(Notice{Text: "One or more seats are no longer available", Level: NoticeError})
			req := s.nextRequest()
			s.render()
			return Followup{Refetch: &req}, nil
		}
		s.log.Error("hold failed", slog.String("error", err.Error()))
		s.presenter.Notice(Notice{Text: "Error processing request", Level: NoticeError})
		s.render()
		return Followup{}, nil
	}

	if gerr := s.lifecycle.HoldGranted(attempt, resp.BookingId, resp.ExpiresAt); gerr != nil {
		return Followup{}, gerr
	}
	token := s.countdown.Start()
	remaining := resp.ExpiresAt.Sub(now)
	s.log.Info("seats held", slog.Int("booking_id", resp.BookingId), slog.Time("expires_at", resp.ExpiresAt))
	s.presenter.Notice(Notice{
		Text:  fmt.Sprintf("Seats held! Complete payment in %s.", minutesLabel(remaining)),
		Level: NoticeSuccess,
	})
	s.presenter.Countdown(FormatCountdown(remaining))
	s.render()
	return Followup{CountdownToken: token}, nil
}

// Confirm starts payment confirmation for the active hold. Confirming a
// hold that is already past its expiry fails with ErrHoldExpired and
// expires the flow.
func (s *Session) Confirm(now time.Time) (ConfirmCall, error) {
	if s.closed {
		return ConfirmCall{}, ErrStaleResponse
	}
	attempt, err := s.lifecycle.Confirm(now)
	if errors.Is(err, ErrHoldExpired) {
		s.expire()
		return ConfirmCall{}, err
	}
	if err != nil {
		return ConfirmCall{}, err
	}
	hold, _ := s.lifecycle.Hold()
	s.log.Info("confirm requested", slog.Int("booking_id", hold.BookingID))
	s.render()
	return ConfirmCall{Attempt: attempt, Request: model.ConfirmRequest{BookingId: hold.BookingID}}, nil
}

// ApplyConfirm handles the confirm response. Success ends the flow and
// hands the booking to the presenter; failure keeps the hold and its
// countdown running.
func (s *Session) ApplyConfirm(attempt uint64, resp model.ConfirmResponse, err error, now time.Time) error {
	if s.closed {
		return ErrStaleResponse
	}
	if err != nil {
		expired, ferr := s.lifecycle.ConfirmFailed(attempt)
		if ferr != nil {
			return ferr
		}
		s.log.Error("confirm failed", slog.String("error", err.Error()))
		if expired {
			s.expire()
			return nil
		}
		s.presenter.Notice(Notice{Text: "Error confirming booking", Level: NoticeError})
		s.render()
		return nil
	}

	if cerr := s.lifecycle.Confirmed(attempt); cerr != nil {
		return cerr
	}
	s.countdown.Stop()
	s.poll.Stop()

	title := resp.MovieTitle
	if title == "" {
		title = s.movie.Title
	}
	booking := model.Booking{
		Code:       resp.BookingCode,
		MovieTitle: title,
		Seats:      append([]string(nil), resp.Seats...),
		CreatedAt:  now,
	}
	s.booking = &booking
	s.log.Info("booking confirmed", slog.String("booking_code", booking.Code))
	s.presenter.Booked(booking)
	s.presenter.Notice(Notice{Text: "Booking Confirmed!", Level: NoticeSuccess})
	s.render()
	return nil
}

// CountdownTick re-evaluates the hold countdown. It returns false when the
// driver must stop rescheduling the countdown timer.
func (s *Session) CountdownTick(token uint64, now time.Time) bool {
	if s.closed || !s.countdown.Accept(token) {
		return false
	}
	hold, ok := s.lifecycle.Hold()
	if !ok {
		return false
	}
	if s.lifecycle.Observe(now) {
		s.expire()
		return false
	}
	s.presenter.Countdown(FormatCountdown(hold.Remaining(now)))
	return true
}

// Acknowledge clears an expired flow back to a fresh Idle and restarts
// seat polling. It returns the new poll token and the request to issue
// now, or false when the flow had not expired.
func (s *Session) Acknowledge() (SeatsRequest, uint64, bool) {
	if s.closed || s.lifecycle.State() != StateExpired {
		return SeatsRequest{}, 0, false
	}
	s.lifecycle.Reset()
	s.selection.Clear()
	token := s.poll.Start()
	s.log.Debug("expired flow acknowledged")
	return s.nextRequest(), token, true
}

// Close ends the flow: both schedules stop and every later response is
// stale.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.poll.Stop()
	s.countdown.Stop()
	s.closed = true
	s.log.Debug("seat selection closed", slog.String("state", s.lifecycle.State().String()))
}

func (s *Session) expire() {
	if !s.lifecycle.Expire() {
		return
	}
	s.countdown.Stop()
	s.poll.Stop()
	s.selection.Clear()
	for id, status := range s.display {
		if status != DisplaySelected {
			continue
		}
		s.display[id] = DisplayUnknown
		if s.layout != nil {
			if seat, ok := s.layout.Seat(id); ok {
				s.display[id] = DisplayFor(seat.Status)
			}
		}
	}
	s.log.Warn("hold expired")
	s.presenter.Countdown("EXPIRED")
	s.presenter.Notice(Notice{Text: "Session Expired", Level: NoticeError, Sticky: true})
	s.render()
}

func (s *Session) render() {
	s.presenter.Render(s.View())
}

func minutesLabel(remaining time.Duration) string {
	minutes := int(math.Round(remaining.Minutes()))
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
