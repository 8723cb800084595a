// Package scheduler triggers validator work on chain block intervals.
package scheduler

// NewBlockCallback creates a new BlockCallback that triggers every N blocks.
func NewBlockCallback(interval int, execute func() error) *BlockCallback {
	return &BlockCallback{
		LastTriggerAtBlock: -1,
		interval:           interval,
		executeFn:          execute,
	}
}

// ShouldTrigger checks if the callback should trigger at the current block.
func (bc *BlockCallback) ShouldTrigger(currentBlock int) bool {
	// If this is the first time, trigger if we're at the right interval
	if bc.LastTriggerAtBlock <= 0 {
		return currentBlock%bc.interval == 0
	}

	blocksSinceLastTrigger := currentBlock - bc.LastTriggerAtBlock
	return blocksSinceLastTrigger >= bc.interval
}

// Execute runs the callback. The caller records the trigger block on
// success so failed executions retry on the next block.
func (bc *BlockCallback) Execute() error {
	return bc.executeFn()
}

// GetName returns the callback name.
func (bc *BlockCallback) GetName() string {
	return InferNameFromFunc(bc.executeFn)
}
