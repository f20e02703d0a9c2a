package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// TerminalNotifier prints global notifications. Requests may finish on
// several goroutines, so writes are serialised.
type TerminalNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

func (n *TerminalNotifier) Success(_ context.Context, msg string) {
	n.write("[ok] ", msg)
}

func (n *TerminalNotifier) Error(_ context.Context, msg string) {
	n.write("[error] ", msg)
}

func (n *TerminalNotifier) write(prefix, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, prefix+msg)
}
