package vm

import (
	"bufio"
	"errors"
	goIO "io"
	"os"

	"github.com/aryanA101a/synacor-vm-go/logging"
	"github.com/chzyer/readline"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// LineReader supplies one full input line per call, including its
// trailing newline when the source had one.
type LineReader interface {
	ReadLine() ([]byte, error)
}

type plainReader struct {
	r         *bufio.Reader
	prompt    string
	promptOut goIO.Writer
}

// NewLineReader reads lines from r. A non-empty prompt is written to
// promptOut before every read.
func NewLineReader(r goIO.Reader, prompt string, promptOut goIO.Writer) LineReader {
	return &plainReader{r: bufio.NewReader(r), prompt: prompt, promptOut: promptOut}
}

func (p *plainReader) ReadLine() ([]byte, error) {
	if p.prompt != "" && p.promptOut != nil {
		goIO.WriteString(p.promptOut, p.prompt)
	}
	line, err := p.r.ReadBytes('\n')
	if errors.Is(err, goIO.EOF) && len(line) > 0 {
		return line, nil
	}
	return line, err
}

// ReadlineReader reads lines from an interactive terminal with line
// editing and history.
type ReadlineReader struct {
	rl *readline.Instance
}

func NewReadlineReader(prompt, historyFile string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

func (r *ReadlineReader) ReadLine() ([]byte, error) {
	line, err := r.rl.Readline()
	if err != nil { // io.EOF, readline.ErrInterrupt
		return nil, err
	}
	return append([]byte(line), '\n'), nil
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// console emits program output and hands out buffered input one
// character at a time.
type console struct {
	out   goIO.Writer
	in    LineReader
	queue []Word
}

func newConsole(in LineReader, out goIO.Writer) console {
	if out == nil {
		out = goIO.Discard
	}
	return console{out: out, in: in}
}

func (c *console) emit(v Word) error {
	if _, err := c.out.Write([]byte{byte(v & 0xFF)}); err != nil {
		return ioError(err)
	}
	return nil
}

// next returns the next pending character, blocking on a full line read
// when the queue is empty.
func (c *console) next() (Word, error) {
	if len(c.queue) == 0 {
		if err := c.fill(); err != nil {
			return 0, err
		}
	}
	w := c.queue[0]
	c.queue = c.queue[1:]
	return w, nil
}

func (c *console) fill() error {
	if c.in == nil {
		return ioError(goIO.ErrUnexpectedEOF)
	}
	line, err := c.in.ReadLine()
	if err != nil {
		return ioError(err)
	}
	if len(line) == 0 {
		return ioError(goIO.ErrUnexpectedEOF)
	}
	// one code per character, truncated to the word size
	for _, r := range string(line) {
		c.queue = append(c.queue, Word(r))
	}
	return nil
}

// Terminal guards the attributes of the controlling tty while a program
// runs.
type Terminal struct {
	fd                     uintptr
	originalTerminalConfig unix.Termios
	saved                  bool
}

func NewTerminal(f *os.File) *Terminal {
	return &Terminal{fd: f.Fd()}
}

func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.fd))
}

// EnableLineMode puts the terminal in canonical mode with echo so that
// reads return whole lines.
func (t *Terminal) EnableLineMode() error {
	logging.Log(logging.LogLevelDebug, "enabling line mode", "fd", t.fd)
	if err := termios.Tcgetattr(t.fd, &t.originalTerminalConfig); err != nil {
		return err
	}
	t.saved = true
	newTermios := t.originalTerminalConfig
	newTermios.Lflag |= unix.ICANON | unix.ECHO
	return termios.Tcsetattr(t.fd, termios.TCSANOW, &newTermios)
}

// Restore puts back the attributes saved by EnableLineMode. It is safe
// to call more than once.
func (t *Terminal) Restore() error {
	if !t.saved {
		return nil
	}
	logging.Log(logging.LogLevelDebug, "restoring terminal", "fd", t.fd)
	t.saved = false
	return termios.Tcsetattr(t.fd, termios.TCSANOW, &t.originalTerminalConfig)
}
