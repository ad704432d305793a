package probe

import (
	"regexp"
	"sync"
)

// Fake is an in-memory Probe for tests. Each entry in the fake is a
// full command line; IsRunning and Terminate treat fragments as
// unanchored regular expressions matched against those entries, the
// same semantics pgrep -f applies. A plain path fragment therefore
// matches as a substring, just like in production.
//
// Fake is safe for concurrent use by multiple goroutines.
type Fake struct {
	mu    sync.Mutex
	procs []string

	// Err, when set, is returned by both IsRunning and Terminate.
	Err error

	// FailKill makes Terminate report that nothing was signaled while
	// leaving matching processes alive, mimicking a pkill that loses
	// the race with an exiting process.
	FailKill bool

	terminated []string
}

// NewFake returns a fake probe whose process table holds the given
// command lines.
func NewFake(cmdlines ...string) *Fake {
	return &Fake{procs: cmdlines}
}

// Add registers a live command line.
func (f *Fake) Add(cmdline string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs = append(f.procs, cmdline)
}

// IsRunning reports whether any registered command line matches
// fragment.
func (f *Fake) IsRunning(fragment string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	re, err := regexp.Compile(fragment)
	if err != nil {
		return false, err
	}
	for _, proc := range f.procs {
		if re.MatchString(proc) {
			return true, nil
		}
	}
	return false, nil
}

// Terminate removes every command line matching fragment and reports
// whether any matched. With FailKill set, nothing is removed and the
// result is false.
func (f *Fake) Terminate(fragment string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	f.terminated = append(f.terminated, fragment)
	if f.FailKill {
		return false, nil
	}
	re, err := regexp.Compile(fragment)
	if err != nil {
		return false, err
	}
	var kept []string
	matched := false
	for _, proc := range f.procs {
		if re.MatchString(proc) {
			matched = true
			continue
		}
		kept = append(kept, proc)
	}
	f.procs = kept
	return matched, nil
}

// TerminateCalls returns the fragments passed to Terminate, in order.
func (f *Fake) TerminateCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.terminated...)
}

var _ Probe = (*Fake)(nil)
