package viewer

import "manview/man/doc"

// Stack is the browser-style navigation history: an arena of loaded documents
// with a 1-based cursor. Opening a page while below the top truncates the
// forward history before appending; Back and Forward only move the cursor.
type Stack struct {
	pages []*doc.Document
	pos   int // 1-based index of the displayed page; 0 means empty
}

// Current returns the displayed document, or nil when the stack is empty.
func (s *Stack) Current() *doc.Document {
	if s.pos == 0 {
		return nil
	}
	return s.pages[s.pos-1]
}

// Len returns the number of stacked pages, including forward history.
func (s *Stack) Len() int { return len(s.pages) }

// Pos returns the 1-based cursor position.
func (s *Stack) Pos() int { return s.pos }

// Push makes d the displayed page. Any forward history from the cursor on is
// discarded first.
func (s *Stack) Push(d *doc.Document) {
	if s.pos < len(s.pages) {
		for i := s.pos; i < len(s.pages); i++ {
			s.pages[i] = nil
		}
		s.pages = s.pages[:s.pos]
	}
	s.pages = append(s.pages, d)
	s.pos++
}

// Back moves the cursor to the previous page and reports whether it moved.
// It is a no-op at the bottom of the stack.
func (s *Stack) Back() bool {
	if s.pos <= 1 {
		return false
	}
	s.pos--
	return true
}

// Forward replays intact forward history and reports whether it moved. It
// never regenerates discarded pages.
func (s *Stack) Forward() bool {
	if s.pos >= len(s.pages) {
		return false
	}
	s.pos++
	return true
}
