package view

import "sync"

// Row is one rendered table row.
type Row struct {
	Name        string
	Description string
	Agent       string
	Command     string
}

// Surface is what a load is allowed to touch: the table body and the two
// text regions.
type Surface interface {
	ClearMessages()
	SetInfo(text string)
	SetError(text string)
	ClearRows()
	AppendRow(row Row)
}

// Snapshot is a copy of the board taken for rendering.
type Snapshot struct {
	Rows       []Row
	Error      string
	Info       string
	Generation uint64
}

// Board holds the page state shared between loads and page views.
// Every load takes a new generation in Begin; Commit only applies changes for
// the latest generation so an older response never overwrites a newer one.
type Board struct {
	mu         sync.RWMutex
	page       page
	generation uint64
}

func NewBoard() *Board {
	return &Board{}
}

// Begin starts a new generation and runs fn against the board.
func (b *Board) Begin(fn func(Surface)) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	fn(&b.page)
	return b.generation
}

// Commit runs fn only if gen is still the latest generation.
func (b *Board) Commit(gen uint64, fn func(Surface)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		return false
	}
	fn(&b.page)
	return true
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rows := make([]Row, len(b.page.rows))
	copy(rows, b.page.rows)
	return Snapshot{
		Rows:       rows,
		Error:      b.page.errText,
		Info:       b.page.info,
		Generation: b.generation,
	}
}

type page struct {
	rows    []Row
	errText string
	info    string
}

func (p *page) ClearMessages() {
	p.errText = ""
	p.info = ""
}

func (p *page) SetInfo(text string)  { p.info = text }
func (p *page) SetError(text string) { p.errText = text }
func (p *page) ClearRows()           { p.rows = nil }
func (p *page) AppendRow(row Row)    { p.rows = append(p.rows, row) }
