package catalog

// computeFeatured derives the featured view: featured movies in insertion
// order, then featured series in insertion order.
func computeFeatured(movies []Movie, series []Series) []MediaContent {
	featured := make([]MediaContent, 0)
	for _, m := range movies {
		if m.Featured {
			featured = append(featured, m.Content())
		}
	}
	for _, s := range series {
		if s.Featured {
			featured = append(featured, s.Content())
		}
	}
	return featured
}

func sameFeatured(a, b []MediaContent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}
