package dock

// Queue is a single-threaded FIFO of deferred tasks. It replaces ad hoc
// "run later" callbacks so that work depending on valid geometry runs in a
// testable order on the host's UI thread.
type Queue struct {
	tasks []func()
}

// Post appends a task. Tasks posted while the queue drains run in the same
// drain, after everything already queued.
func (q *Queue) Post(fn func()) {
	if fn != nil {
		q.tasks = append(q.tasks, fn)
	}
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int { return len(q.tasks) }

// Drain runs pending tasks until the queue is empty and returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		fn()
		ran++
	}
	return ran
}
