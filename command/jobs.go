package command

import (
	"sync"

	"github.com/google/uuid"

	"git.sr.ht/~caraway/nettle/object"
)

// JobStatus is a background job's lifecycle state, reported by the
// `jobs` builtin.
type JobStatus int

const (
	JobRunning JobStatus = iota
	JobDone
)

// Job is one backgrounded (`&`) command line (§4.5 step 5 expansion):
// the distilled spec says backgrounding "returns immediately" but drops
// what happens to the job afterward, so we track it here the way every
// real shell does, keyed by a uuid.UUID rather than a small integer job
// number since nothing in this language exposes %1-style job syntax.
type Job struct {
	ID     uuid.UUID
	Status JobStatus

	mu     sync.Mutex
	done   chan struct{}
	result *object.Cmd
}

// Wait blocks until the job completes and returns its result.
func (j *Job) Wait() *object.Cmd {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

func (j *Job) finish(res *object.Cmd) {
	j.mu.Lock()
	j.result = res
	j.Status = JobDone
	j.mu.Unlock()
	close(j.done)
}

// Jobs is the background-job table exposed to the `jobs` and `wait`
// builtins (§4.5 expansion), so a backgrounded pipeline is tracked
// rather than simply abandoned once it returns control to the script.
type Jobs struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
}

func NewJobs() *Jobs {
	return &Jobs{jobs: make(map[uuid.UUID]*Job)}
}

// Start launches run in its own goroutine and registers the resulting
// Job immediately so `jobs`/`wait` can observe it before it completes.
func (j *Jobs) Start(run func() *object.Cmd) *Job {
	job := &Job{ID: uuid.New(), Status: JobRunning, done: make(chan struct{})}

	j.mu.Lock()
	j.jobs[job.ID] = job
	j.mu.Unlock()

	go func() {
		job.finish(run())
	}()
	return job
}

func (j *Jobs) Lookup(id uuid.UUID) (*Job, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	return job, ok
}

// All returns every tracked job, for the `jobs` builtin's listing.
func (j *Jobs) All() []*Job {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*Job, 0, len(j.jobs))
	for _, job := range j.jobs {
		out = append(out, job)
	}
	return out
}

// Remove drops a completed job from the table, used by `wait` once it
// has collected the result so the table doesn't grow unbounded over a
// long REPL session.
func (j *Jobs) Remove(id uuid.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.jobs, id)
}
