package catalog

// fixedGenres is the authoritative genre set. Book creation resolves against
// it; unknown ids fall back to the "Lainnya" (other) label.
var fixedGenres = []Genre{
	{ID: 1, Name: "Programming"},
	{ID: 2, Name: "Design"},
	{ID: 3, Name: "Business"},
	{ID: 4, Name: "Fiction"},
	{ID: 5, Name: "Education"},
	{ID: 6, Name: "History"},
	{ID: 7, Name: "Science"},
	{ID: 8, Name: "Art"},
	{ID: 9, Name: "Children"},
}

const fallbackGenreName = "Lainnya"

// Genres returns a copy of the fixed genre set.
func Genres() []Genre {
	return append([]Genre(nil), fixedGenres...)
}

// ResolveGenre maps a genre id onto the fixed set, falling back to the
// "other" label for unknown ids.
func ResolveGenre(id int) Genre {
	for _, g := range fixedGenres {
		if g.ID == id {
			return g
		}
	}
	return Genre{ID: id, Name: fallbackGenreName}
}

// CountGenres projects the fixed set with per-genre book counts.
func CountGenres(books []Book) []GenreCount {
	counts := make(map[int]int, len(fixedGenres))
	for _, b := range books {
		counts[b.Genre.ID]++
	}
	result := make([]GenreCount, 0, len(fixedGenres))
	for _, g := range fixedGenres {
		result = append(result, GenreCount{Genre: g, Count: counts[g.ID]})
	}
	return result
}
