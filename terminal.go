package form

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// Clearer clears the visible output.
type Clearer interface {
	Clear() error
}

// ClearFunc adapts a plain function to Clearer.
type ClearFunc func() error

// Clear calls fn.
func (fn ClearFunc) Clear() error {
	return fn()
}

// console abstracts the line-based terminal operations a form needs.
//
// Implementations:
//   - realConsole: reads from the controlling terminal via go-tty, or from stdin when it is piped
//   - readerConsole: reads from any io.Reader, used with WithInput
//   - mockConsole: scripted lines for tests
//
// Clearing the display is a separate concern handled by a Clearer.
type console interface {
	ReadLine() (string, error) // Read one line without its line ending
	Close() error              // Release the terminal, safe to call twice
}

// clearLines is how many blank lines are written when the output cannot be cleared.
const clearLines = 20

// defaultOutput returns stdout, wrapped for ANSI support on Windows.
func defaultOutput() io.Writer {
	if runtime.GOOS == "windows" {
		// Use colorable for Windows ANSI color support
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

// NewWriterClearer returns a Clearer that clears a terminal with ANSI escape codes
// and pushes older output out of view with blank lines on anything else.
func NewWriterClearer(w io.Writer) Clearer {
	f, _ := w.(*os.File)
	return newClearer(w, f)
}

// newClearer writes to w and decides how to clear by looking at the file behind it,
// which differs from w when stdout is wrapped by colorable.
func newClearer(w io.Writer, f *os.File) Clearer {
	return ClearFunc(func() error {
		if f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			_, err := io.WriteString(w, "\x1b[H\x1b[2J")
			return err
		}
		_, err := io.WriteString(w, strings.Repeat("\n", clearLines))
		return err
	})
}

// realConsole reads from the user's terminal.
//
// When stdin is a terminal the console opens the tty with go-tty on the first read,
// which gives consistent echo and backspace handling across platforms. When stdin is
// redirected it falls back to buffered line reads so scripted input keeps working.
type realConsole struct {
	tty    *tty.TTY      // Opened lazily on first read
	reader *bufio.Reader // Used when stdin is not a terminal
	closed bool          // Track if the tty is already closed to prevent double-close panic on Windows
}

func newRealConsole() *realConsole {
	return &realConsole{}
}

func (c *realConsole) ReadLine() (string, error) {
	if c.tty == nil && c.reader == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			t, err := tty.Open()
			if err != nil {
				return "", err
			}
			c.tty = t
		} else {
			c.reader = bufio.NewReader(os.Stdin)
		}
	}
	if c.tty != nil {
		return c.tty.ReadString()
	}
	return readLine(c.reader)
}

func (c *realConsole) Close() error {
	// Prevent double-close which causes panic on Windows
	if c.closed || c.tty == nil {
		return nil
	}
	c.closed = true
	return c.tty.Close()
}

// readerConsole reads lines from an arbitrary reader.
type readerConsole struct {
	reader *bufio.Reader
}

func newReaderConsole(r io.Reader) *readerConsole {
	return &readerConsole{reader: bufio.NewReader(r)}
}

func (c *readerConsole) ReadLine() (string, error) {
	return readLine(c.reader)
}

func (c *readerConsole) Close() error {
	return nil
}

// readLine reads up to the next newline and trims the line ending.
// A final line without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
