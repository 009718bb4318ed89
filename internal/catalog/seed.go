package catalog

import "github.com/google/uuid"

// seedBooks populate an empty catalog on first boot so the storefront has
// something to browse, mirroring the original sample data.
func seedBooks() []Book {
	year2024 := 2024
	year2023 := 2023
	return []Book{
		{
			ID:              uuid.New(),
			Title:           "Buku React untuk Pemula",
			Writer:          "Han Solo",
			Publisher:       "Penerbit IT-Lit",
			Price:           150000,
			Stock:           20,
			Genre:           ResolveGenre(1),
			Condition:       ConditionNew,
			PublicationYear: &year2024,
			Description:     "Buku panduan lengkap React.",
		},
		{
			ID:              uuid.New(),
			Title:           "Node.js di Balik Layar",
			Writer:          "Leia Organa",
			Publisher:       "Penerbit IT-Lit",
			Price:           145000,
			Stock:           15,
			Genre:           ResolveGenre(1),
			Condition:       ConditionNew,
			PublicationYear: &year2023,
			Description:     "Memahami cara kerja Node.js.",
		},
	}
}
