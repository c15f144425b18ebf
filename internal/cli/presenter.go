package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

var (
	titleStyle = color.New(color.FgCyan, color.Bold)
	alertStyle = color.New(color.FgRed, color.Bold)
	hintStyle  = color.New(color.FgHiBlack)
	okStyle    = color.New(color.FgGreen)
	scoreStyle = color.New(color.FgYellow, color.Bold)
)

// Presenter prints navigator alerts to the terminal. Background saves alert
// from their own goroutine, so writes are serialized.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer

	// base is where every byte ends up, whether written by the presenter
	// or by the line editor.
	base lockedWriter
}

func NewPresenter(out io.Writer) *Presenter {
	base := lockedWriter{mu: &sync.Mutex{}, w: out}
	return &Presenter{out: base, base: base}
}

func (p *Presenter) Alert(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\n%s %s\n", alertStyle.Sprint("! "+title+":"), message)
}

func (p *Presenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// use routes presenter output through out, typically the line editor's
// prompt-aware writer.
func (p *Presenter) use(out io.Writer) {
	p.mu.Lock()
	p.out = out
	p.mu.Unlock()
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(b)
}
