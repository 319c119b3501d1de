package models

import "time"

// Folder is a non-owning grouping label for prompts. Prompts reference a
// folder by id; deleting a folder detaches its prompts instead of deleting
// them.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// FilterValue returns the value used for filtering in bubbles lists.
func (f Folder) FilterValue() string {
	return cleanString(f.Name)
}
