package toolbar

import "sync"

// FocusCycler steps keyboard focus through the toolbar's focusable items.
// The item list is replaced wholesale after every structural change; the
// current item is preserved across replacement when it is still present.
type FocusCycler struct {
	mu    sync.Mutex
	items []Item
	idx   int
}

// NewFocusCycler returns a cycler with no items.
func NewFocusCycler() *FocusCycler {
	return &FocusCycler{idx: -1}
}

// SetItems replaces the focusable collection. If the currently focused
// item survives, focus stays on it; otherwise focus resets to none.
func (c *FocusCycler) SetItems(items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current Item
	if c.idx >= 0 && c.idx < len(c.items) {
		current = c.items[c.idx]
	}

	c.items = items
	c.idx = -1
	if current == nil {
		return
	}
	for i, it := range items {
		if it == current {
			c.idx = i
			return
		}
	}
}

// Current returns the focused item, if any.
func (c *FocusCycler) Current() (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx < 0 || c.idx >= len(c.items) {
		return nil, false
	}
	return c.items[c.idx], true
}

// Next advances focus to the next item, wrapping around.
func (c *FocusCycler) Next() (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return nil, false
	}
	c.idx = (c.idx + 1) % len(c.items)
	return c.items[c.idx], true
}

// Prev moves focus to the previous item, wrapping around.
func (c *FocusCycler) Prev() (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return nil, false
	}
	if c.idx <= 0 {
		c.idx = len(c.items) - 1
	} else {
		c.idx--
	}
	return c.items[c.idx], true
}

// Len returns the number of focusable items.
func (c *FocusCycler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
