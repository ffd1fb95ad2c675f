package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"inlaw/cmd/inlaw/shell"
	"inlaw/internal/logging"
	"inlaw/internal/orchestrator"
	"inlaw/internal/store"
)

// watcher is implemented by stores that can report changes made by other
// processes.
type watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// runInteractive runs the terminal interface until the user quits.
func runInteractive(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	queue := orchestrator.NewTaskQueue()
	sink := shell.NewSink()
	orch := newOrchestrator(kv, queue, sink)
	model := shell.New(orch, queue, sink)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, cancelWatch := context.WithCancel(gctx)

	g.Go(func() error {
		defer cancelWatch()
		_, err := p.Run()
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("terminal interface failed: %w", err)
		}
		return nil
	})

	if w, ok := kv.(watcher); ok && cfg.Store.Watch {
		g.Go(func() error {
			return forwardChanges(watchCtx, w, p)
		})
	}

	return g.Wait()
}

// forwardChanges tells the program about every external store change
// until ctx ends.
func forwardChanges(ctx context.Context, w watcher, p *tea.Program) error {
	changes, err := w.Watch(ctx)
	if err != nil {
		logging.StoreWarn("store watch unavailable: %v", err)
		return nil
	}
	for range changes {
		logging.StoreDebug("store changed on disk, reloading")
		p.Send(shell.StoreChangedMsg{})
	}
	return nil
}

var _ watcher = (*store.FileStore)(nil)
