package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// menuWidget is one focusable row of the setup card.
type menuWidget interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
	Draw(screen tcell.Screen, x, y, width int) int
}

// putString draws s from x and returns the column after it.
func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func cardStyle(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(MenuColors.CardBG)
}

// drawLabel draws the focus cursor, the accent diamond and the label.
func drawLabel(screen tcell.Screen, x, y int, label string, focused bool) int {
	if focused {
		screen.SetContent(x, y, '▸', nil, cardStyle(MenuColors.Selected))
	} else {
		screen.SetContent(x, y, ' ', nil, cardStyle(MenuColors.CardBG))
	}
	screen.SetContent(x+2, y, '◈', nil, cardStyle(MenuColors.TitleAccent))
	return putString(screen, x+4, y, label, cardStyle(MenuColors.Label))
}

// LevelSlider picks an integer in [min, max], here the search depth.
type LevelSlider struct {
	label    string
	min      int
	max      int
	value    int
	hint     func(int) string
	focused  bool
	onChange func(int)
}

// NewLevelSlider creates a slider. hint, if set, describes the current value.
func NewLevelSlider(label string, min, max, initial int, hint func(int) string, onChange func(int)) *LevelSlider {
	s := &LevelSlider{
		label:    label,
		min:      min,
		max:      max,
		value:    min,
		hint:     hint,
		onChange: onChange,
	}
	s.SetValue(initial)
	return s
}

func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyLeft || event.Key() == tcell.KeyRune && event.Rune() == 'h':
		s.SetValue(s.value - 1)
		return true
	case event.Key() == tcell.KeyRight || event.Key() == tcell.KeyRune && event.Rune() == 'l':
		s.SetValue(s.value + 1)
		return true
	}
	return false
}

// Draw renders "▸ ◈ Depth   ◀ ████░░░░ 5 ▶ hint" and returns the rows used.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	on, off := cardStyle(MenuColors.Selected), cardStyle(MenuColors.Unselected)
	arrow := off
	if s.focused {
		arrow = on
	}

	col := drawLabel(screen, x, y, s.label, s.focused) + 3
	screen.SetContent(col, y, '◀', nil, arrow)
	col += 2
	for v := s.min; v <= s.max; v++ {
		if v <= s.value {
			screen.SetContent(col, y, '█', nil, on)
		} else {
			screen.SetContent(col, y, '░', nil, off)
		}
		col++
	}
	col = putString(screen, col+1, y, strconv.Itoa(s.value), cardStyle(MenuColors.Label))
	screen.SetContent(col+1, y, '▶', nil, arrow)
	if s.hint != nil {
		putString(screen, col+3, y, s.hint(s.value), cardStyle(MenuColors.Hint))
	}
	return 1
}

func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue ignores values outside the range.
func (s *LevelSlider) SetValue(v int) {
	if v < s.min || v > s.max {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(v)
	}
}

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a radio button group.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	r := &RadioSelect{label: label, options: options, onChange: onChange}
	r.SetSelected(initial)
	return r
}

func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyUp || event.Key() == tcell.KeyLeft || event.Key() == tcell.KeyRune && event.Rune() == 'k':
		r.SetSelected(r.selected - 1)
		return true
	case event.Key() == tcell.KeyDown || event.Key() == tcell.KeyRight || event.Key() == tcell.KeyRune && event.Rune() == 'j':
		r.SetSelected(r.selected + 1)
		return true
	}
	return false
}

func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	drawLabel(screen, x, y, r.label, false)
	row := y + 1
	for i, opt := range r.options {
		col := x + 2
		if r.focused && i == r.selected {
			screen.SetContent(col, row, '▸', nil, cardStyle(MenuColors.Selected))
		}
		col += 2

		style, bullet := cardStyle(MenuColors.Unselected), '○'
		if i == r.selected {
			style, bullet = cardStyle(MenuColors.Selected), '●'
		}
		screen.SetContent(col, row, bullet, nil, style)
		col = putString(screen, col+2, row, opt.Label, style)
		if opt.Description != "" {
			putString(screen, col+1, row, opt.Description, cardStyle(MenuColors.Hint))
		}
		row++
	}
	return row - y
}

func (r *RadioSelect) Selected() int {
	return r.selected
}

func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(index)
	}
}

// Toggle is an on/off switch.
type Toggle struct {
	label    string
	on       bool
	focused  bool
	onChange func(bool)
}

func NewToggle(label string, on bool, onChange func(bool)) *Toggle {
	return &Toggle{label: label, on: on, onChange: onChange}
}

func (t *Toggle) SetFocused(focused bool) {
	t.focused = focused
}

func (t *Toggle) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyEnter, event.Key() == tcell.KeyLeft, event.Key() == tcell.KeyRight,
		event.Key() == tcell.KeyRune && event.Rune() == ' ':
		t.SetOn(!t.on)
		return true
	}
	return false
}

func (t *Toggle) Draw(screen tcell.Screen, x, y, width int) int {
	col := drawLabel(screen, x, y, t.label, t.focused) + 3
	if t.on {
		putString(screen, col, y, "[■ on ]", cardStyle(MenuColors.Selected))
	} else {
		putString(screen, col, y, "[ off□]", cardStyle(MenuColors.Unselected))
	}
	return 1
}

func (t *Toggle) On() bool {
	return t.on
}

func (t *Toggle) SetOn(on bool) {
	t.on = on
	if t.onChange != nil {
		t.onChange(on)
	}
}

// MenuButton is a pill-shaped button.
type MenuButton struct {
	label    string
	primary  bool
	focused  bool
	onSelect func()
}

func NewMenuButton(label string, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{label: label, primary: primary, onSelect: onSelect}
}

func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() == tcell.KeyEnter {
		if b.onSelect != nil {
			b.onSelect()
		}
		return true
	}
	return false
}

func (b *MenuButton) text() string {
	if b.primary {
		return "▶ " + b.label
	}
	return b.label
}

// Draw renders the button and returns its width.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := b.Width()
	if b.focused {
		style := tcell.StyleDefault.Foreground(MenuColors.ButtonText).Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		putString(screen, x+1, y, label, style)
		return width
	}
	bracket := cardStyle(MenuColors.Border)
	screen.SetContent(x, y, '[', nil, bracket)
	col := putString(screen, x+1, y, label, cardStyle(MenuColors.Hint))
	screen.SetContent(col, y, ']', nil, bracket)
	return width
}

func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2
}

// ButtonRow lays buttons out side by side and moves between them with
// left/right.
type ButtonRow struct {
	buttons []*MenuButton
	current int
	focused bool
}

func NewButtonRow(buttons ...*MenuButton) *ButtonRow {
	return &ButtonRow{buttons: buttons}
}

func (r *ButtonRow) SetFocused(focused bool) {
	r.focused = focused
	for i, b := range r.buttons {
		b.SetFocused(focused && i == r.current)
	}
}

func (r *ButtonRow) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		if r.current > 0 {
			r.current--
		}
	case tcell.KeyRight:
		if r.current < len(r.buttons)-1 {
			r.current++
		}
	default:
		return r.buttons[r.current].HandleKey(event)
	}
	r.SetFocused(r.focused)
	return true
}

// Draw centers the buttons in width.
func (r *ButtonRow) Draw(screen tcell.Screen, x, y, width int) int {
	total := 0
	for _, b := range r.buttons {
		total += b.Width() + 2
	}
	col := x + (width-total)/2
	for _, b := range r.buttons {
		col += b.Draw(screen, col, y) + 2
	}
	return 1
}
