package figure

// Scheduler defers work to the next display frame.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to [Scheduler].
type SchedulerFunc func(task func())

func (f SchedulerFunc) Schedule(task func()) { f(task) }

// Immediate runs every task synchronously. Requests made while a task runs
// are not coalesced with it.
var Immediate Scheduler = SchedulerFunc(func(task func()) { task() })

// Queue collects tasks until its owner flushes it. It is not safe for
// concurrent use.
type Queue struct {
	tasks []func()
}

// Schedule appends task to the queue.
func (q *Queue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

// Flush runs the tasks queued before the call and returns how many ran.
// Tasks scheduled while flushing wait for the next flush.
func (q *Queue) Flush() int {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int { return len(q.tasks) }
