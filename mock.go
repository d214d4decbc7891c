package form

import "io"

// mockConsole implements console for testing and development.
//
// It replays a fixed list of lines and then reports io.EOF, which lets tests drive
// whole forms deterministically without a terminal.
type mockConsole struct {
	lines  []string // Pre-configured answers, one per read
	pos    int      // Index of the next answer
	reads  int      // Number of ReadLine calls, including the one that hit EOF
	closed bool     // Track Close for test verification
}

func newMockConsole(lines ...string) *mockConsole {
	return &mockConsole{lines: lines}
}

func (m *mockConsole) ReadLine() (string, error) {
	m.reads++
	if m.pos >= len(m.lines) {
		return "", io.EOF
	}
	line := m.lines[m.pos]
	m.pos++
	return line, nil
}

func (m *mockConsole) Close() error {
	m.closed = true
	return nil
}

// mockClearer counts how often the display was cleared.
type mockClearer struct {
	count int
}

func (m *mockClearer) Clear() error {
	m.count++
	return nil
}
