package models

// Dashboard is a named canvas holding a set of positioned items. Deleting a
// dashboard cascades to its items on the backend.
type Dashboard struct {
	ID          int
	Title       string
	Description string
	Theme       string
	IsPublic    bool
	Items       []*Item
}

// Item returns the item with the given id, or nil.
func (d *Dashboard) Item(id int) *Item {
	for _, it := range d.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}
