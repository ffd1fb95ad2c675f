package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"inlaw/cmd/inlaw/ui"
	"inlaw/internal/orchestrator"
	"inlaw/internal/state"
)

var askRaw bool

// askCmd sends one message and prints the reply without the interface.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the reply",
	Long: `Sends one message through the assistant and prints its reply.
Deferred work fires immediately instead of after its delay.

Example:
  inlaw ask "What is the limitation period for a contract claim?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	var last state.Snapshot
	queue := orchestrator.NewTaskQueue()
	orch := newOrchestrator(kv, queue, orchestrator.RenderFunc(func(s state.Snapshot) { last = s }))
	orch.Init()

	if !orch.SendMessage(strings.Join(args, " ")) {
		return errors.New("nothing to send")
	}
	drain(orch, queue)

	reply, ok := lastAssistant(last)
	if !ok {
		return errors.New("no reply received")
	}
	return printReply(cmd.OutOrStdout(), reply)
}

// drain fires queued tasks, including ones scheduled while firing, until
// the queue is empty.
func drain(orch *orchestrator.Orchestrator, queue *orchestrator.TaskQueue) {
	for queue.Len() > 0 {
		for _, t := range queue.Drain() {
			orch.Fire(t)
		}
	}
}

func lastAssistant(s state.Snapshot) (string, bool) {
	msgs := s.Conversation.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == state.RoleAssistant {
			return msgs[i].Text, true
		}
	}
	return "", false
}

func printReply(w io.Writer, text string) error {
	if !askRaw {
		md := ui.NewMarkdown(nil)
		md.Configure(ui.DarkTheme().GlamourStyle(), 80)
		text = md.Render(text)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(text, "\n"))
	return err
}
