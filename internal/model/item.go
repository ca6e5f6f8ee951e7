package model

// Item is the domain model for a todo entry.
// ID is assigned once at creation and never reused or derived from position.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
