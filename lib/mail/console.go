package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ConsoleMailer writes messages to a writer instead of sending them.
// It is the development backend.
type ConsoleMailer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleMailer writes to out, or stdout when out is nil.
func NewConsoleMailer(out io.Writer) *ConsoleMailer {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleMailer{out: out}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := fmt.Fprintf(m.out,
		"From: %s\nTo: %s\nSubject: %s\n\n%s\n%s\n",
		msg.From, strings.Join(msg.To, ", "), msg.Subject, msg.Body, strings.Repeat("-", 79),
	)
	return err
}
