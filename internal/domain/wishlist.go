package domain

import "slices"

// Wishlist is an insertion-ordered set of comic ids.
type Wishlist struct {
	IDs []string `json:"ids"`
}

// NewWishlist builds a wishlist from ids, dropping duplicates and keeping
// the first occurrence of each.
func NewWishlist(ids []string) Wishlist {
	w := Wishlist{IDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		w.Add(id)
	}
	return w
}

// Contains reports whether id is on the wishlist.
func (w *Wishlist) Contains(id string) bool {
	return slices.Contains(w.IDs, id)
}

// Add appends id. It reports false if id was already present.
func (w *Wishlist) Add(id string) bool {
	if w.Contains(id) {
		return false
	}
	w.IDs = append(w.IDs, id)
	return true
}

// Remove drops id. It reports whether id was present.
func (w *Wishlist) Remove(id string) bool {
	idx := slices.Index(w.IDs, id)
	if idx < 0 {
		return false
	}
	w.IDs = slices.Delete(w.IDs, idx, idx+1)
	return true
}

// Toggle flips membership of id and reports whether it is now present.
func (w *Wishlist) Toggle(id string) bool {
	if w.Remove(id) {
		return false
	}
	w.IDs = append(w.IDs, id)
	return true
}

// Len returns the number of ids.
func (w *Wishlist) Len() int {
	return len(w.IDs)
}
