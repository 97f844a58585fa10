package model

import "fmt"

// Item is the domain model for a todo entry.
// Identity is ID; Title and Completed are the only mutable fields.
// Remote payloads may carry extra fields (userId); they are dropped on decode.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ValidateIDs reports the first id that appears more than once in items.
func ValidateIDs(items []Item) error {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return fmt.Errorf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
