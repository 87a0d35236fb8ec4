package markup

import "strings"

// Scanner walks source text line by line and hands each produced block to a
// callback immediately. It keeps no lookahead and buffers nothing.
// A Scanner is not safe for concurrent use; create one per conversion.
type Scanner struct {
	state State
	lines int
}

// NewScanner returns a Scanner in the initial state.
func NewScanner() *Scanner {
	return &Scanner{}
}

// State returns the scanner state after the last processed line.
func (s *Scanner) State() State {
	return s.state
}

// Lines returns the number of physical lines processed so far.
func (s *Scanner) Lines() int {
	return s.lines
}

// Line classifies one physical line and returns the produced block, if any.
func (s *Scanner) Line(line string) Block {
	s.lines++
	b, next := Classify(strings.TrimSuffix(line, "\r"), s.state)
	s.state = next
	return b
}

// Scan processes every line of src and calls emit for each block produced.
// Any state is a valid stopping point, so an unterminated code fence simply
// leaves InCodeBlock set.
func (s *Scanner) Scan(src string, emit func(Block)) State {
	for _, line := range SplitLines(src) {
		if b := s.Line(line); b != nil {
			emit(b)
		}
	}
	return s.state
}

// Scan runs a fresh Scanner over src.
func Scan(src string, emit func(Block)) State {
	return NewScanner().Scan(src, emit)
}

// Blocks collects every block produced from src.
func Blocks(src string) []Block {
	var out []Block
	Scan(src, func(b Block) { out = append(out, b) })
	return out
}

// SplitLines splits src on "\n". A trailing newline does not produce an
// extra trailing line, matching how editors count lines.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(src, "\n"), "\n")
}
