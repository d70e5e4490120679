package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"git.sr.ht/~caraway/nettle/command"
	"git.sr.ht/~caraway/nettle/symtab"
)

// jobsBuiltin lists every tracked background job and its status,
// closing over the Commander so it can reach its Jobs table.
func jobsBuiltin(c *command.Commander) command.Builtin {
	return func(st *symtab.Stack, streams command.Streams, args []string) int {
		for _, job := range c.Jobs.All() {
			status := "running"
			if job.Status == command.JobDone {
				status = "done"
			}
			fmt.Fprintf(streams.Out, "%s\t%s\n", job.ID, status)
		}
		return 0
	}
}

// waitBuiltin blocks until a backgrounded job finishes and surfaces
// its exit status, then drops it from the table. With no argument it
// waits on every currently tracked job.
func waitBuiltin(c *command.Commander) command.Builtin {
	return func(st *symtab.Stack, streams command.Streams, args []string) int {
		if len(args) == 1 {
			status := 0
			for _, job := range c.Jobs.All() {
				res := job.Wait()
				c.Jobs.Remove(job.ID)
				status = res.Status
			}
			return status
		}

		status := 0
		for _, idStr := range args[1:] {
			id, err := uuid.Parse(idStr)
			if err != nil {
				errorf(streams, args[0], "%q is not a job id", idStr)
				status = 1
				continue
			}
			job, ok := c.Jobs.Lookup(id)
			if !ok {
				errorf(streams, args[0], "no such job %s", idStr)
				status = 1
				continue
			}
			res := job.Wait()
			c.Jobs.Remove(job.ID)
			status = res.Status
		}
		return status
	}
}
