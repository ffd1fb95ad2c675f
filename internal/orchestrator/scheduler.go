package orchestrator

import (
	"sync"
	"time"
)

// TaskKind identifies a piece of deferred work.
type TaskKind int

const (
	TaskReply TaskKind = iota
	TaskAttachAck
	TaskAnalysis
	TaskSearch
	TaskSignUpPrompt
)

func (k TaskKind) String() string {
	switch k {
	case TaskReply:
		return "reply"
	case TaskAttachAck:
		return "attach-ack"
	case TaskAnalysis:
		return "analysis"
	case TaskSearch:
		return "search"
	case TaskSignUpPrompt:
		return "signup-prompt"
	default:
		return "unknown"
	}
}

// Task is deferred work. The scheduler must hand it back through
// Orchestrator.Fire after Delay, on the same goroutine that drives every
// other request. Fire decides whether the task is still current.
type Task struct {
	ID    uint64
	Kind  TaskKind
	Delay time.Duration
	// Generation is the chat generation the task was scheduled under.
	Generation uint64
	// Token guards analysis, search and prompt tasks against newer requests.
	Token uint64
	// Text is the user text for replies or the file name for acknowledgments.
	Text string
}

// Scheduler accepts deferred tasks.
type Scheduler interface {
	Schedule(Task)
}

// TaskQueue is a Scheduler that buffers tasks until drained. The terminal
// shell drains it after every request and turns each task into a timer
// message; tests drain it and fire tasks by hand.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []Task
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

func (q *TaskQueue) Schedule(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

// Drain returns the buffered tasks in scheduling order and empties the queue.
func (q *TaskQueue) Drain() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.tasks
	q.tasks = nil
	return out
}

// Len reports how many tasks are buffered.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
