package tui

import (
	"fmt"
	"strconv"
	"strings"

	"cinemahall-cli/booking"
	"cinemahall-cli/model"
	"github.com/charmbracelet/lipgloss"
)

// presenterSink collects what a session presents during one Update so the
// model can take it over with absorb. It is shared by pointer across model
// copies; only Update touches it.
type presenterSink struct {
	view      *booking.View
	notices   []booking.Notice
	countdown *string
	booked    *model.Booking
}

func (p *presenterSink) Render(v booking.View) {
	p.view = &v
}

func (p *presenterSink) Notice(n booking.Notice) {
	p.notices = append(p.notices, n)
}

func (p *presenterSink) Countdown(text string) {
	p.countdown = &text
}

func (p *presenterSink) Booked(b model.Booking) {
	p.booked = &b
}

func (p *presenterSink) reset() {
	p.view = nil
	p.notices = nil
	p.countdown = nil
	p.booked = nil
}

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleHeld      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	seatStyleSold      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	seatStyleUnknown   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleCursor    = lipgloss.NewStyle().Reverse(true).Bold(true)
	markerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Italic(true)
)

func (m appModel) renderSeatMap() string {
	layout := m.view.Layout
	if layout == nil || len(layout.Rows) == 0 {
		return "No seat map data."
	}

	rowWidth := 1
	maxSeats := 0
	cellWidth := 2
	for _, row := range layout.Rows {
		rowWidth = max(rowWidth, len(row.Label))
		maxSeats = max(maxSeats, len(row.Seats))
		if !m.showNumbers {
			continue
		}
		for _, id := range row.Seats {
			if seat, ok := layout.Seat(id); ok {
				cellWidth = max(cellWidth, len(strconv.Itoa(seat.Number)))
			}
		}
	}
	gridWidth := maxSeats*(cellWidth+1) - 1
	indent := strings.Repeat(" ", rowWidth+1)

	var b strings.Builder
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))
	screenBar := screenBarBlock(gridWidth, "SCREEN")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	for r, row := range layout.Rows {
		if row.Marker != nil {
			b.WriteString(indent + markerStyle.Render(row.Marker.Label()) + "\n")
		}
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, row.Label))
		for c, id := range row.Seats {
			seat, _ := layout.Seat(id)
			status := m.view.Display[id]
			text := seatToken(status)
			if m.showNumbers {
				text = strconv.Itoa(seat.Number)
			}
			cell := padCell(text, cellWidth)
			if r == m.cursorRow && c == m.cursorCol {
				b.WriteString(seatStyleCursor.Render(cell))
			} else {
				b.WriteString(seatStyle(status).Render(cell))
			}
			if c < len(row.Seats)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(strings.Repeat(" ", (maxSeats-len(row.Seats))*(cellWidth+1)))
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, row.Label))
	}

	legend := "Legend: [] available • ** selected • HH held • XX sold"
	if m.showNumbers {
		legend = "Legend: green available • magenta selected • yellow held • red sold"
	}
	b.WriteString("\n" + hint(legend) + "\n\n")
	b.WriteString(m.cursorSeatLine() + "\n")
	b.WriteString(m.selectionSummary() + "\n\n")
	b.WriteString(m.payButton())
	if m.countdown != "" {
		b.WriteString("  " + m.countdownView())
	}
	if m.notice != nil {
		b.WriteString("\n\n" + noticeStyle(m.notice.Notice).Render(noticeText(m.notice.Notice)))
	}
	return b.String()
}

func seatToken(status booking.DisplayStatus) string {
	switch status {
	case booking.DisplayAvailable:
		return "[]"
	case booking.DisplaySelected:
		return "**"
	case booking.DisplayHeld:
		return "HH"
	case booking.DisplaySold:
		return "XX"
	default:
		return "??"
	}
}

func seatStyle(status booking.DisplayStatus) lipgloss.Style {
	switch status {
	case booking.DisplayAvailable:
		return seatStyleAvailable
	case booking.DisplaySelected:
		return seatStyleSelected
	case booking.DisplayHeld:
		return seatStyleHeld
	case booking.DisplaySold:
		return seatStyleSold
	default:
		return seatStyleUnknown
	}
}

func (m appModel) cursorSeatLine() string {
	id, ok := m.seatAtCursor()
	if !ok {
		return ""
	}
	seat, _ := m.view.Layout.Seat(id)
	return hint(fmt.Sprintf("Seat %s • %s • $%d • %s", seat.Label(), seat.Category, seat.Price, m.view.Display[id]))
}

func (m appModel) selectionSummary() string {
	sel := m.view.Selection
	if sel.Count == 0 {
		return "Selected: none • Total: $0"
	}
	labels := make([]string, 0, sel.Count)
	for _, s := range sel.Seats {
		label := strconv.Itoa(s.ID)
		if m.view.Layout != nil {
			if seat, ok := m.view.Layout.Seat(s.ID); ok {
				label = seat.Label()
			}
		}
		labels = append(labels, label)
	}
	return fmt.Sprintf("Selected: %s • Total: $%d", strings.Join(labels, ", "), sel.Total)
}

func (m appModel) payButton() string {
	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	if !m.view.PayEnabled() {
		chip = chip.Background(lipgloss.Color("240"))
	}
	return chip.Render(m.view.PayLabel())
}

func (m appModel) countdownView() string {
	style := lipgloss.NewStyle().Bold(true)
	if m.countdown == "EXPIRED" {
		return style.Foreground(lipgloss.Color("1")).Render(m.countdown)
	}
	return style.Render("Time left: " + m.countdown)
}

func noticeStyle(n booking.Notice) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch n.Level {
	case booking.NoticeSuccess:
		return style.Foreground(lipgloss.Color("2"))
	case booking.NoticeError:
		return style.Foreground(lipgloss.Color("203"))
	default:
		return style.Faint(true)
	}
}

func noticeText(n booking.Notice) string {
	if n.Sticky {
		return n.Text + " (press enter)"
	}
	return n.Text
}

func (m appModel) bookingCardView() string {
	b := m.card
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2).
		Render("Booking Confirmed!")
	label := lipgloss.NewStyle().Faint(true)
	content := strings.Join([]string{
		title,
		"",
		label.Render("Movie  ") + b.MovieTitle,
		label.Render("Code   ") + lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(b.Code)),
		label.Render("Seats  ") + strings.Join(b.Seats, ", "),
		label.Render("Hall   ") + hallName + " • " + showTime,
		"",
		hint("Press enter to return to movies."),
	}, "\n")

	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	if m.width > 56 {
		panelStyle = panelStyle.Width(min(m.width-8, 64))
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func (m appModel) seatAtCursor() (int, bool) {
	layout := m.view.Layout
	if layout == nil || m.cursorRow < 0 || m.cursorRow >= len(layout.Rows) {
		return 0, false
	}
	row := layout.Rows[m.cursorRow]
	if m.cursorCol < 0 || m.cursorCol >= len(row.Seats) {
		return 0, false
	}
	return row.Seats[m.cursorCol], true
}

func (m *appModel) moveCursor(dRow int, dCol int) {
	m.cursorRow += dRow
	m.cursorCol += dCol
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	layout := m.view.Layout
	if layout == nil || len(layout.Rows) == 0 {
		m.cursorRow, m.cursorCol = 0, 0
		return
	}
	m.cursorRow = max(0, min(m.cursorRow, len(layout.Rows)-1))
	seats := len(layout.Rows[m.cursorRow].Seats)
	m.cursorCol = max(0, min(m.cursorCol, seats-1))
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
