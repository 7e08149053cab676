package permissions

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/windy003/photo-gallery/common/rcontext"
	"golang.org/x/term"
)

// Prompt asks on an interactive terminal. Input that is not a terminal counts as a denial.
type Prompt struct {
	in         io.Reader
	fd         int
	out        io.Writer
	isTerminal func(fd int) bool

	lock    sync.Mutex
	granted bool
}

func NewStdinPrompt() *Prompt {
	return NewPrompt(os.Stdin, int(os.Stdin.Fd()), os.Stdout)
}

func NewPrompt(in io.Reader, fd int, out io.Writer) *Prompt {
	return &Prompt{
		in:         in,
		fd:         fd,
		out:        out,
		isTerminal: term.IsTerminal,
	}
}

func (p *Prompt) Granted(ctx rcontext.RequestContext) bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.granted
}

func (p *Prompt) Request(ctx rcontext.RequestContext) (bool, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.granted {
		return true, nil
	}

	if !p.isTerminal(p.fd) {
		ctx.Log.Warn("Not attached to a terminal; treating the media permission as denied")
		return false, nil
	}

	fmt.Fprint(p.out, "Allow the gallery to read your photos? [y/N]: ")
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	p.granted = answer == "y" || answer == "yes"
	ctx.Log.Info("Media permission granted: ", p.granted)
	return p.granted, nil
}
