package services

import "sync"

// orderLocks serializes all workflow mutations for a single order so the
// check-then-act sequences in the transition engine and the auto-progression
// trigger are atomic within that order's scope. Without this, two concurrent
// item completions could each observe "not all items complete" and neither
// would fire the order-level completion.
var orderLocks sync.Map // map[uint]*sync.Mutex

// lockOrder acquires the mutex for an order id and returns its unlock func
func lockOrder(orderID uint) func() {
	v, _ := orderLocks.LoadOrStore(orderID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
