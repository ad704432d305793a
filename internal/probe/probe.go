// Package probe answers liveness questions about external processes
// by matching command-line patterns, the way pgrep -f does.
//
// The account supervisor never stores PIDs. An account's browser is
// "running" exactly when some process's full command line matches the
// account's profile directory path. Patterns are unanchored regular
// expressions, so a plain path fragment matches as a substring; that
// match is the whole contract. It can in principle catch an unrelated
// process that embeds the same path in its argv, which is accepted
// because profile paths are long, absolute, and unique per account.
package probe

// Probe reports and signals processes matched by a command-line
// pattern.
type Probe interface {
	// IsRunning reports whether at least one live process's command
	// line matches fragment.
	IsRunning(fragment string) (bool, error)

	// Terminate signals every process whose command line matches
	// fragment. It reports whether at least one process was signaled;
	// matching nothing is not an error.
	Terminate(fragment string) (bool, error)
}
