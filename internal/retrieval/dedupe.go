package retrieval

// Dedupe collapses candidates that reduce to the same (book, preview) key,
// keeping the first occurrence in input order. Overlapping index chunks
// frequently reconstruct to the same logical unit.
func Dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.BookID + "\x00" + c.Preview
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
