package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cinemahall-cli/booking"
	"cinemahall-cli/config"
	"cinemahall-cli/model"
	"cinemahall-cli/service"
	"cinemahall-cli/store"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	hallName          = "IMAX Hall"
	showTime          = "19:00"
	countdownInterval = time.Second
	noticeTTL         = 3 * time.Second
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateSelectMovie
	stateLoadingSeats
	stateSeatMap
	stateLoadingTickets
	stateTickets
	stateError
)

type appModel struct {
	client *service.Client
	cfg    config.Config
	log    *slog.Logger
	now    func() time.Time

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movieList  list.Model
	ticketList list.Model
	spinner    spinner.Model

	session        *booking.Session
	sink           *presenterSink
	view           booking.View
	seatsErr       error
	cursorRow      int
	cursorCol      int
	showNumbers    bool
	countdown      string
	notice         *noticeView
	noticeSeq      uint64
	card           *model.Booking
	ticketsOffline bool
}

type noticeView struct {
	id uint64
	booking.Notice
}

type errMsg struct {
	err error
}

type moviesMsg struct {
	movies []model.Movie
	err    error
}

type seatsMsg struct {
	req   booking.SeatsRequest
	seats []model.Seat
	err   error
}

type pollTickMsg struct {
	sessionID string
	token     uint64
}

type countdownTickMsg struct {
	sessionID string
	token     uint64
}

type holdMsg struct {
	sessionID string
	attempt   uint64
	resp      model.HoldResponse
	err       error
}

type confirmMsg struct {
	sessionID string
	attempt   uint64
	resp      model.ConfirmResponse
	err       error
}

type noticeExpiredMsg struct {
	id uint64
}

type bookingSavedMsg struct {
	code string
	err  error
}

type ticketsMsg struct {
	records []model.BookingRecord
	offline bool
	err     error
}

// New builds the root model. A nil logger discards log output.
func New(client *service.Client, cfg config.Config, logger *slog.Logger) tea.Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if client == nil {
		client = service.NewClient(cfg.APIURL, nil)
	}
	m := appModel{
		client:      client,
		cfg:         cfg,
		log:         logger,
		now:         time.Now,
		state:       stateLoadingMovies,
		sink:        &presenterSink{},
		showNumbers: true,
	}

	m.movieList = newList("Select Movie")
	m.ticketList = newList("My Tickets")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state)
		m.state = stateError
		return m, nil

	case moviesMsg:
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("Error loading movies: %w", msg.err))
		}
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.state = stateSelectMovie
		return m, nil

	case ticketsMsg:
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("Error loading bookings: %w", msg.err))
		}
		m.ticketsOffline = msg.offline
		m.ticketList.SetItems(buildTicketItems(msg.records))
		m.state = stateTickets
		return m, nil

	case seatsMsg:
		return m.applySeats(msg)

	case pollTickMsg:
		if !m.ownsSession(msg.sessionID) {
			return m, nil
		}
		req, ok := m.session.PollTick(msg.token)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.fetchSeatsCmd(req), pollTickCmd(msg.sessionID, msg.token, m.cfg.PollInterval))

	case countdownTickMsg:
		if !m.ownsSession(msg.sessionID) {
			return m, nil
		}
		next := m.session.CountdownTick(msg.token, m.now())
		cmd := m.absorb()
		if next {
			return m, tea.Batch(cmd, countdownTickCmd(msg.sessionID, msg.token))
		}
		return m, cmd

	case holdMsg:
		return m.applyHold(msg)

	case confirmMsg:
		return m.applyConfirm(msg)

	case bookingSavedMsg:
		if msg.err != nil {
			m.log.Warn("remember booking failed", slog.String("code", msg.code), slog.String("error", msg.err.Error()))
		}
		return m, nil

	case noticeExpiredMsg:
		if m.notice != nil && m.notice.id == msg.id && !m.notice.Sticky {
			m.notice = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateTickets:
		m.ticketList, cmd = m.ticketList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingMovies, stateLoadingSeats, stateLoadingTickets:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSeatMap:
		if m.card != nil {
			return header + "\n\n" + m.bookingCardView()
		}
		return header + "\n\n" + m.renderSeatMap()
	case stateTickets:
		return header + "\n\n" + m.ticketsView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Cinemahall")
	sub := []string{}
	if m.session != nil && (m.state == stateLoadingSeats || m.state == stateSeatMap) {
		movie := m.session.Movie()
		sub = append(sub, movie.Title, hallName+" • "+showTime)
	}
	if m.cfg.UserEmail != "" {
		sub = append(sub, "User: "+m.cfg.UserEmail)
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc back • type to filter"
	if m.state == stateSelectMovie {
		hints = "ctrl+c quit • type to filter • enter pick seats • ctrl+t my tickets • ctrl+r refresh"
	}
	if m.state == stateSeatMap {
		hints = "ctrl+c quit • esc back • arrows move • space select • p pay • n toggle numbers"
		if m.card != nil || (m.notice != nil && m.notice.Sticky) {
			hints = "ctrl+c quit • enter continue"
		}
	}
	if m.state == stateTickets {
		hints = "ctrl+c quit • esc back • type to filter"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.closeSession()
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		model, cmd := m.goBack()
		return model, cmd, true
	case "ctrl+t":
		if m.state == stateSelectMovie {
			m.state = stateLoadingTickets
			return m, tea.Batch(m.fetchTicketsCmd(), m.spinner.Tick), true
		}
	case "ctrl+r":
		if m.state == stateSelectMovie {
			m.state = stateLoadingMovies
			return m, tea.Batch(m.refreshMoviesCmd(), m.spinner.Tick), true
		}
	}

	if m.state == stateSeatMap {
		return m.handleSeatMapKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectMovie:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			return m.openSession(item.movie)
		}
	}
	return m, nil, false
}

func (m appModel) handleSeatMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.card != nil {
		if msg.Type == tea.KeyEnter {
			m.card = nil
			m.leaveSeatMap()
		}
		return m, nil, true
	}
	if m.notice != nil && m.notice.Sticky {
		if msg.Type == tea.KeyEnter {
			m.session.Acknowledge()
			m.notice = nil
			m.leaveSeatMap()
		}
		return m, nil, true
	}

	switch {
	case msg.Type == tea.KeySpace, msg.Type == tea.KeyEnter:
		return m.toggleSeatAtCursor()
	case msg.String() == "p":
		return m.pay()
	case msg.String() == "n":
		m.showNumbers = !m.showNumbers
		return m, nil, true
	case msg.String() == "up", msg.String() == "k":
		m.moveCursor(-1, 0)
		return m, nil, true
	case msg.String() == "down", msg.String() == "j":
		m.moveCursor(1, 0)
		return m, nil, true
	case msg.String() == "left", msg.String() == "h":
		m.moveCursor(0, -1)
		return m, nil, true
	case msg.String() == "right", msg.String() == "l":
		m.moveCursor(0, 1)
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) openSession(movie model.Movie) (tea.Model, tea.Cmd, bool) {
	m.closeSession()
	m.session = booking.NewSession(movie, m.cfg.UserEmail, m.sink, m.log)
	m.sink.reset()
	m.view = booking.View{}
	m.seatsErr = nil
	m.cursorRow, m.cursorCol = 0, 0
	m.countdown = ""
	m.notice = nil
	m.card = nil

	req, token := m.session.Open()
	m.state = stateLoadingSeats
	return m, tea.Batch(
		m.fetchSeatsCmd(req),
		pollTickCmd(m.session.ID(), token, m.cfg.PollInterval),
		m.spinner.Tick,
	), true
}

func (m appModel) applySeats(msg seatsMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if msg.err != nil {
		m.session.SeatsFailed(msg.req, msg.err)
		if msg.req.SessionID == m.session.ID() {
			m.seatsErr = msg.err
		}
		return m, nil
	}
	if err := m.session.ApplySeats(msg.req, msg.seats); err != nil {
		return m, nil
	}
	m.seatsErr = nil
	if m.state == stateLoadingSeats {
		m.state = stateSeatMap
	}
	return m, m.absorb()
}

func (m appModel) toggleSeatAtCursor() (tea.Model, tea.Cmd, bool) {
	id, ok := m.seatAtCursor()
	if !ok {
		return m, nil, true
	}
	if err := m.session.Toggle(id); err != nil {
		m.log.Debug("seat toggle refused", slog.Int("seat_id", id), slog.String("error", err.Error()))
	}
	return m, m.absorb(), true
}

func (m appModel) pay() (tea.Model, tea.Cmd, bool) {
	switch m.session.State() {
	case booking.StateIdle:
		call, err := m.session.RequestHold()
		cmd := m.absorb()
		if err != nil {
			return m, cmd, true
		}
		return m, tea.Batch(cmd, m.holdCmd(m.session.ID(), call)), true
	case booking.StateHeld:
		call, err := m.session.Confirm(m.now())
		cmd := m.absorb()
		if err != nil {
			return m, cmd, true
		}
		return m, tea.Batch(cmd, m.confirmCmd(m.session.ID(), call)), true
	}
	return m, nil, true
}

func (m appModel) applyHold(msg holdMsg) (tea.Model, tea.Cmd) {
	if !m.ownsSession(msg.sessionID) {
		return m, nil
	}
	follow, err := m.session.ApplyHold(msg.attempt, msg.resp, msg.err, m.now())
	if err != nil {
		m.log.Debug("hold result dropped", slog.String("error", err.Error()))
		return m, nil
	}
	cmds := []tea.Cmd{m.absorb()}
	if follow.Refetch != nil {
		cmds = append(cmds, m.fetchSeatsCmd(*follow.Refetch))
	}
	if follow.CountdownToken != 0 {
		cmds = append(cmds, countdownTickCmd(msg.sessionID, follow.CountdownToken))
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) applyConfirm(msg confirmMsg) (tea.Model, tea.Cmd) {
	if !m.ownsSession(msg.sessionID) {
		return m, nil
	}
	if err := m.session.ApplyConfirm(msg.attempt, msg.resp, msg.err, m.now()); err != nil {
		m.log.Debug("confirm result dropped", slog.String("error", err.Error()))
		return m, nil
	}
	return m, m.absorb()
}

// absorb moves whatever the session presented into the model and returns
// the timers that dismiss transient notices.
func (m *appModel) absorb() tea.Cmd {
	if m.sink.view != nil {
		m.view = *m.sink.view
		m.clampCursor()
	}
	if m.sink.countdown != nil {
		m.countdown = *m.sink.countdown
	}
	var cmds []tea.Cmd
	if m.sink.booked != nil {
		b := *m.sink.booked
		m.card = &b
		cmds = append(cmds, rememberBookingCmd(b))
	}

	for _, notice := range m.sink.notices {
		if m.notice != nil && m.notice.Sticky && !notice.Sticky {
			continue
		}
		m.noticeSeq++
		m.notice = &noticeView{id: m.noticeSeq, Notice: notice}
		if !notice.Sticky {
			cmds = append(cmds, dismissNoticeCmd(m.noticeSeq))
		}
	}
	m.sink.reset()
	return tea.Batch(cmds...)
}

func (m appModel) ownsSession(sessionID string) bool {
	return m.session != nil && m.session.ID() == sessionID
}

func (m *appModel) closeSession() {
	if m.session == nil {
		return
	}
	m.session.Close()
	m.session = nil
}

func (m *appModel) leaveSeatMap() {
	m.closeSession()
	m.countdown = ""
	m.notice = nil
	m.card = nil
	m.state = stateSelectMovie
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateLoadingSeats, stateSeatMap:
		m.leaveSeatMap()
	case stateTickets, stateLoadingTickets:
		m.state = stateSelectMovie
	case stateError:
		m.state = m.lastState
		if m.state == stateLoadingMovies {
			return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
		}
	default:
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateTickets:
		return &m.ticketList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies ||
		m.state == stateLoadingSeats ||
		m.state == stateLoadingTickets
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingSeats:
		title = "Loading seat map"
	case stateLoadingTickets:
		title = "Loading your bookings"
	}

	sub := "Fetching data..."
	if m.state == stateLoadingSeats && m.seatsErr != nil {
		sub = "Seat map unavailable, retrying..."
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint(sub))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.ticketList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateLoadingMovies
	case stateLoadingTickets:
		return stateSelectMovie
	case stateError:
		return stateSelectMovie
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		cached, fresh, cacheErr := store.LoadMovieCache(client.BaseURL())
		if cacheErr == nil && fresh && len(cached) > 0 {
			return moviesMsg{movies: cached}
		}
		ctx := context.Background()
		movies, err := client.GetMovies(ctx)
		if err != nil {
			if len(cached) > 0 {
				return moviesMsg{movies: cached}
			}
			return moviesMsg{err: err}
		}
		if len(movies) > 0 {
			_ = store.SaveMovieCache(client.BaseURL(), movies)
		}
		return moviesMsg{movies: movies}
	}
}

func rememberBookingCmd(b model.Booking) tea.Cmd {
	return func() tea.Msg {
		return bookingSavedMsg{code: b.Code, err: store.RememberBooking(b)}
	}
}

func (m appModel) refreshMoviesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := client.GetMovies(ctx)
		if err == nil && len(movies) > 0 {
			_ = store.SaveMovieCache(client.BaseURL(), movies)
		}
		return moviesMsg{movies: movies, err: err}
	}
}

func (m appModel) fetchSeatsCmd(req booking.SeatsRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := client.GetSeats(ctx, req.ShowID)
		return seatsMsg{req: req, seats: seats, err: service.Classify(err)}
	}
}

func (m appModel) holdCmd(sessionID string, call booking.HoldCall) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := client.HoldSeats(ctx, call.Request)
		return holdMsg{sessionID: sessionID, attempt: call.Attempt, resp: resp, err: service.Classify(err)}
	}
}

func (m appModel) confirmCmd(sessionID string, call booking.ConfirmCall) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := client.ConfirmBooking(ctx, call.Request)
		return confirmMsg{sessionID: sessionID, attempt: call.Attempt, resp: resp, err: service.Classify(err)}
	}
}

// fetchTicketsCmd lists bookings from the API and falls back to the local
// history when the API cannot be reached.
func (m appModel) fetchTicketsCmd() tea.Cmd {
	client := m.client
	email := m.cfg.UserEmail
	return func() tea.Msg {
		ctx := context.Background()
		records, err := client.GetMyBookings(ctx, email)
		if err == nil {
			return ticketsMsg{records: records}
		}
		local, localErr := store.LoadBookings()
		if localErr != nil || len(local) == 0 {
			return ticketsMsg{err: errors.Join(err, localErr)}
		}
		return ticketsMsg{records: recordsFromHistory(local), offline: true}
	}
}

func pollTickCmd(sessionID string, token uint64, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return pollTickMsg{sessionID: sessionID, token: token}
	})
}

func countdownTickCmd(sessionID string, token uint64) tea.Cmd {
	return tea.Tick(countdownInterval, func(time.Time) tea.Msg {
		return countdownTickMsg{sessionID: sessionID, token: token}
	})
}

func dismissNoticeCmd(id uint64) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

type movieItem struct {
	movie model.Movie
}

func (m movieItem) Title() string {
	return m.movie.Title
}

func (m movieItem) Description() string {
	return fmt.Sprintf("%s • %s • %s", m.movie.DurationLabel(), hallName, showTime)
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(m.movie.Title)
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type ticketItem struct {
	record model.BookingRecord
}

func (t ticketItem) Title() string {
	return t.record.MovieTitle
}

func (t ticketItem) Description() string {
	parts := []string{"Code: " + strings.ToUpper(t.record.BookingCode)}
	if len(t.record.Seats) > 0 {
		parts = append(parts, "Seats: "+strings.Join(t.record.Seats, ", "))
	}
	if t.record.Date != "" {
		parts = append(parts, t.record.Date)
	}
	return strings.Join(parts, " • ")
}

func (t ticketItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{t.record.MovieTitle, t.record.BookingCode}, " "))
}

func buildTicketItems(records []model.BookingRecord) []list.Item {
	items := make([]list.Item, 0, len(records))
	for _, record := range records {
		items = append(items, ticketItem{record: record})
	}
	return items
}

func recordsFromHistory(history []model.Booking) []model.BookingRecord {
	records := make([]model.BookingRecord, 0, len(history))
	for _, b := range history {
		records = append(records, b.Record())
	}
	return records
}

func (m appModel) ticketsView() string {
	if len(m.ticketList.Items()) == 0 {
		return lipgloss.NewStyle().Bold(true).Render("My Tickets") + "\n\n" + "No bookings found."
	}
	out := m.ticketList.View()
	if m.ticketsOffline {
		out += "\n" + hint("Booking service unreachable, showing bookings made on this device.")
	}
	return out
}
