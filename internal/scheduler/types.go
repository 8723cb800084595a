package scheduler

// BlockCallback is a callback that triggers every N blocks.
// WARN: if the block updater hangs and the gap between the current block and
// the last trigger block spans multiple intervals, the callback still fires
// only once on catch-up.
type BlockCallback struct {
	LastTriggerAtBlock int
	// interval is the number of blocks between triggers
	interval  int
	executeFn func() error
}

type CallbackHandler interface {
	// Determines if the callback should trigger at the given block height
	ShouldTrigger(currentBlock int) bool
	// Executes the callback logic and returns an error if it fails
	Execute() error
	// Returns the name of the callback, which may be inferred from the function name
	GetName() string
}
