package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. The coordinator is destroyed on the way out.
func Run(ctx context.Context, opts Options) error {
	send := newSender()
	if opts.Theme.Post == nil {
		opts.Theme.Post = send.post
	}
	m, err := New(opts)
	if err != nil {
		return fmt.Errorf("build theme: %w", err)
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithMouseCellMotion())
	fwdCtx, stopForward := context.WithCancel(ctx)
	go send.forward(fwdCtx, p.Send)

	_, err = p.Run()
	stopForward()
	m.coord.Destroy()
	if ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}
