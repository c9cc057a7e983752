package plan

// Plan is one complete run definition, aggregated across every loaded file.
type Plan struct {
	Targets []*Target
}

// Target is a single unit of work. The engine treats it as an opaque payload;
// only the runner's executor looks inside.
type Target struct {
	// Name identifies the target within the plan. Unique after validation.
	Name string
	// Run is the shell command to execute. Empty means the target is a pure
	// synchronization point and finishes immediately.
	Run string
	// Env is extra environment for the command, layered over the process env.
	Env map[string]string
	// DependsOn names the targets that must finish before this one may start.
	DependsOn []string
}
