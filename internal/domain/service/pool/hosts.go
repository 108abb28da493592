package pool

import (
	"context"
	"sync"
)

// FixedAnswer is a Prompter for hosts that collect the answer before the
// activation runs, such as a submitted form field or a chat command argument.
// Given false stands for a dismissed prompt.
type FixedAnswer struct {
	Answer string
	Given  bool

	mu     sync.Mutex
	asked  []string
	alerts []string
}

func NewFixedAnswer(answer string, given bool) *FixedAnswer {
	return &FixedAnswer{Answer: answer, Given: given}
}

func (f *FixedAnswer) Prompt(_ context.Context, message string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.asked = append(f.asked, message)

	return f.Answer, f.Given
}

func (f *FixedAnswer) Alert(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.alerts = append(f.alerts, message)
}

// Asked returns the prompt messages shown so far.
func (f *FixedAnswer) Asked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.asked...)
}

// Alerts returns the alert messages shown so far.
func (f *FixedAnswer) Alerts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.alerts...)
}

// LinkCollector is a Navigator that keeps the targets for the host to open
// later, e.g. as a redirect.
type LinkCollector struct {
	mu      sync.Mutex
	targets []string
}

func (c *LinkCollector) OpenInNewContext(_ context.Context, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.targets = append(c.targets, target)
}

// Targets returns every target opened so far.
func (c *LinkCollector) Targets() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.targets...)
}

// Last returns the most recent target, or "" when nothing was opened.
func (c *LinkCollector) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.targets) == 0 {
		return ""
	}

	return c.targets[len(c.targets)-1]
}
