package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/chzyer/readline"
	"github.com/mash-protocol/duration-go/cmd/mash-duration/commands"
)

// lineReader is the part of *readline.Instance the shell uses. Close must
// unblock a pending Readline.
type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
	Close() error
}

// Shell runs a Session on a readline terminal.
type Shell struct {
	rl      lineReader
	session *Session

	closeOnce sync.Once
	closeErr  error
}

// NewShell creates a shell with the "duration> " prompt. Log records go
// through readline so they do not interfere with the prompt.
func NewShell(cfg commands.Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "duration> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	logger, err := commands.NewLogger(rl.Stderr(), cfg.LogLevel)
	if err != nil {
		rl.Close()
		return nil, err
	}

	return newShell(rl, NewSession(cfg, logger, rl.Stdout())), nil
}

func newShell(rl lineReader, session *Session) *Shell {
	return &Shell{rl: rl, session: session}
}

// Close releases the terminal. A Readline blocked in Run returns, so Run
// exits. Close is safe to call more than once.
func (s *Shell) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.rl.Close()
	})
	return s.closeErr
}

// Run starts the interactive command loop. It returns on quit, EOF or when
// ctx is cancelled, including while waiting for input.
func (s *Shell) Run(ctx context.Context) {
	defer s.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	s.session.PrintHelp()

	for {
		line, err := s.rl.Readline()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			// EOF
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		quit, err := s.session.Execute(line)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}
	}
}
