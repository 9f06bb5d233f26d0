package nakama

// taskKind identifies a scheduled session task.
type taskKind int

const (
	// taskBeginBidding advances dealing -> bidding after the reveal pause.
	taskBeginBidding taskKind = iota + 1
	// taskFinishTrick clears a resolved trick after the trick-end pause.
	taskFinishTrick
	// taskReconnectDeadline closes a dropped player's reconnection window.
	taskReconnectDeadline
)

// task is one pending tick-driven action scoped to a session.
type task struct {
	Kind    taskKind
	DueTick int64
	UserID  string // reconnect deadline target; empty otherwise
}

// taskQueue is the session's explicit list of scheduled tasks. Everything
// time-driven in a match goes through it so disposal can cancel the lot.
type taskQueue struct {
	tasks []task
}

func newTaskQueue() *taskQueue {
	return &taskQueue{}
}

// Schedule enqueues a task due at the given tick.
func (q *taskQueue) Schedule(kind taskKind, dueTick int64, userID string) {
	q.tasks = append(q.tasks, task{Kind: kind, DueTick: dueTick, UserID: userID})
}

// CancelReconnect resolves a pending reconnection deadline early, typically
// because the player came back.
func (q *taskQueue) CancelReconnect(userID string) {
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.Kind == taskReconnectDeadline && t.UserID == userID {
			continue
		}
		kept = append(kept, t)
	}
	q.tasks = kept
}

// CancelPhaseTasks drops pending phase advances, keeping reconnect windows
// open. Used on restart, which rewinds the state machine mid-flight.
func (q *taskQueue) CancelPhaseTasks() {
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.Kind == taskReconnectDeadline {
			kept = append(kept, t)
			continue
		}
	}
	q.tasks = kept
}

// Clear cancels every pending task. No task may fire after disposal.
func (q *taskQueue) Clear() {
	q.tasks = nil
}

// PopDue removes and returns all tasks due at or before the given tick, in
// scheduling order.
func (q *taskQueue) PopDue(tick int64) []task {
	var due []task
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.DueTick <= tick {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	q.tasks = kept
	return due
}
