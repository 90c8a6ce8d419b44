package receipts

import "sync"

// Collector is an in-memory Logger used by dry runs and tests.
type Collector struct {
	mu       sync.Mutex
	receipts []Receipt
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Log(r Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receipts = append(c.receipts, r)
	return nil
}

func (c *Collector) Close() error {
	return nil
}

// Receipts returns the collected records in logged order.
func (c *Collector) Receipts() []Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Receipt, len(c.receipts))
	copy(out, c.receipts)
	return out
}
