package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Condition describes whether a copy is sold new or used.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// ParseCondition normalizes and validates a condition value.
func ParseCondition(value string) (Condition, error) {
	switch Condition(strings.ToLower(strings.TrimSpace(value))) {
	case ConditionNew:
		return ConditionNew, nil
	case ConditionUsed:
		return ConditionUsed, nil
	}
	return "", fmt.Errorf("unknown condition %q", value)
}

// Genre is one entry of the fixed genre set.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreCount is the read-side genre projection; Count is recomputed from the
// catalog on every read and never stored.
type GenreCount struct {
	Genre
	Count int `json:"count"`
}

// Book is the catalog record persisted to books.json.
type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Writer          string    `json:"writer"`
	Publisher       string    `json:"publisher,omitempty"`
	Price           int       `json:"price"`
	Stock           int       `json:"stock"`
	Genre           Genre     `json:"genre"`
	Condition       Condition `json:"condition"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Description     string    `json:"description,omitempty"`
	ISBN            string    `json:"isbn,omitempty"`
	ImageURL        *string   `json:"image_url"`
}
