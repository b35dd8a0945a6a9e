package domain

// ItemSnapshot is the denormalized view of a variant captured when it is
// first added to the cart. Carts do not re-fetch live prices.
type ItemSnapshot struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Size  string `json:"size"`
	Color string `json:"color"`
	Image string `json:"img,omitempty"`
}

// CartEntry is one line item, keyed by variant identifier.
type CartEntry struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
	ItemSnapshot
}

// Cart maps a variant identifier to its entry. Every entry holds qty >= 1;
// operations that would drop an entry to zero delete it instead.
type Cart map[string]CartEntry

// NewCart returns an empty cart.
func NewCart() Cart {
	return make(Cart)
}

// Add merges qty into an existing entry or inserts a new one. On repeat adds
// the stored snapshot is kept as-is: the first add wins, matching the
// catalog's first-seen representative fields.
func (c Cart) Add(itemID string, snapshot ItemSnapshot, qty int) {
	if qty <= 0 {
		return
	}
	if entry, ok := c[itemID]; ok {
		entry.Qty += qty
		c[itemID] = entry
		return
	}
	c[itemID] = CartEntry{ItemID: itemID, Qty: qty, ItemSnapshot: snapshot}
}

// Remove decrements an entry's quantity, deleting the entry entirely once it
// reaches zero. Removing an unknown itemID is a no-op.
func (c Cart) Remove(itemID string, qty int) {
	entry, ok := c[itemID]
	if !ok {
		return
	}
	entry.Qty -= qty
	if entry.Qty <= 0 {
		delete(c, itemID)
		return
	}
	c[itemID] = entry
}

// Clear empties the cart unconditionally.
func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// Subtotal recomputes the sum of price x qty over all entries. It is derived
// on every call, never cached.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, entry := range c {
		total += entry.Price * int64(entry.Qty)
	}
	return total
}

// ItemCount returns the total quantity across all entries.
func (c Cart) ItemCount() int {
	var count int
	for _, entry := range c {
		count += entry.Qty
	}
	return count
}
