package service

import (
	"github.com/ikkim/hubline-admin/pkg/logger"
)

type undoStep struct {
	name string
	undo func() error
}

// compensation is an undo stack built up as provisioning steps succeed.
type compensation struct {
	op    string
	steps []undoStep
}

func newCompensation(op string) *compensation {
	return &compensation{op: op}
}

func (c *compensation) push(name string, undo func() error) {
	c.steps = append(c.steps, undoStep{name: name, undo: undo})
}

// unwind runs the undo steps newest first and empties the stack. Failures are
// logged and the remaining steps still run.
func (c *compensation) unwind(cause error) (failed int) {
	logger.Warn("Compensating failed operation", map[string]interface{}{
		"operation": c.op,
		"steps":     len(c.steps),
		"cause":     cause.Error(),
	})

	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.undo(); err != nil {
			failed++
			logger.Error("Compensation step failed", err, map[string]interface{}{
				"operation": c.op,
				"step":      step.name,
			})
			continue
		}
		logger.Debug("Compensation step completed", map[string]interface{}{
			"operation": c.op,
			"step":      step.name,
		})
	}
	c.steps = nil
	return failed
}
