package asm

import (
	"strings"
)

// Scanner is a rune cursor over source text. It tracks the current line
// for diagnostics and signals exhaustion explicitly instead of failing.
type Scanner struct {
	left []rune
	line int
}

// NewScanner creates a scanner positioned at the start of the input.
func NewScanner(input string) *Scanner {
	return &Scanner{
		left: []rune(input),
		line: 1,
	}
}

// Line returns the 1-based line number of the cursor.
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next rune without consuming it.
func (s *Scanner) Peek() (ch rune, ok bool) {
	return s.PeekN(0)
}

// PeekN returns the rune n places ahead without consuming anything.
func (s *Scanner) PeekN(n int) (ch rune, ok bool) {
	if n >= len(s.left) {
		return 0, false
	}
	return s.left[n], true
}

// Next consumes and returns one rune.
func (s *Scanner) Next() (ch rune, ok bool) {
	if len(s.left) == 0 {
		return 0, false
	}
	ch = s.left[0]
	s.left = s.left[1:]
	if ch == '\n' {
		s.line++
	}
	return ch, true
}

// TakeWhile consumes the longest run of runes satisfying pred and
// returns it.
func (s *Scanner) TakeWhile(pred func(rune) bool) string {
	end := 0
	for end < len(s.left) && pred(s.left[end]) {
		if s.left[end] == '\n' {
			s.line++
		}
		end++
	}
	taken := string(s.left[:end])
	s.left = s.left[end:]
	return taken
}

// EatPrefix consumes prefix if the remaining input starts with it.
func (s *Scanner) EatPrefix(prefix string) bool {
	if !strings.HasPrefix(string(s.left), prefix) {
		return false
	}
	for range prefix {
		s.Next()
	}
	return true
}
