package nakama

import "testing"

func TestTaskQueuePopDue(t *testing.T) {
	q := newTaskQueue()
	q.Schedule(taskBeginBidding, 10, "")
	q.Schedule(taskFinishTrick, 5, "")
	q.Schedule(taskReconnectDeadline, 20, "u1")

	if due := q.PopDue(4); len(due) != 0 {
		t.Fatalf("popped %d tasks before anything was due", len(due))
	}

	due := q.PopDue(10)
	if len(due) != 2 {
		t.Fatalf("popped %d tasks at tick 10, want 2", len(due))
	}
	// Scheduling order is preserved among due tasks.
	if due[0].Kind != taskBeginBidding || due[1].Kind != taskFinishTrick {
		t.Errorf("unexpected order %v", due)
	}

	// Due tasks are consumed.
	if due := q.PopDue(10); len(due) != 0 {
		t.Errorf("tasks popped twice: %v", due)
	}

	due = q.PopDue(25)
	if len(due) != 1 || due[0].UserID != "u1" {
		t.Errorf("expected the reconnect deadline, got %v", due)
	}
}

func TestTaskQueueCancelReconnect(t *testing.T) {
	q := newTaskQueue()
	q.Schedule(taskReconnectDeadline, 10, "u1")
	q.Schedule(taskReconnectDeadline, 10, "u2")
	q.Schedule(taskFinishTrick, 10, "")

	q.CancelReconnect("u1")

	due := q.PopDue(10)
	if len(due) != 2 {
		t.Fatalf("popped %d tasks, want 2", len(due))
	}
	for _, task := range due {
		if task.Kind == taskReconnectDeadline && task.UserID == "u1" {
			t.Error("canceled deadline still fired")
		}
	}
}

func TestTaskQueueCancelPhaseTasksKeepsReconnects(t *testing.T) {
	q := newTaskQueue()
	q.Schedule(taskBeginBidding, 10, "")
	q.Schedule(taskFinishTrick, 10, "")
	q.Schedule(taskReconnectDeadline, 10, "u1")

	q.CancelPhaseTasks()

	due := q.PopDue(10)
	if len(due) != 1 || due[0].Kind != taskReconnectDeadline {
		t.Errorf("expected only the reconnect deadline to survive, got %v", due)
	}
}

func TestTaskQueueClear(t *testing.T) {
	q := newTaskQueue()
	q.Schedule(taskBeginBidding, 1, "")
	q.Schedule(taskReconnectDeadline, 1, "u1")

	q.Clear()

	if due := q.PopDue(100); len(due) != 0 {
		t.Errorf("tasks fired after Clear: %v", due)
	}
}
