package openlibrary

import "strings"

// chooseEdition picks the edition to harvest dimensions from. The rules
// run in fixed priority order and the first match wins:
//
//  1. first edition with a dimensions string
//  2. first edition with a page count
//  3. first edition, whatever it contains
//
// An empty list yields nil, which callers treat as absence rather than an
// error. The pass is greedy: qualifying editions are never compared
// against each other.
func chooseEdition(entries []Edition) *Edition {
	for i := range entries {
		if strings.TrimSpace(entries[i].PhysicalDimensions) != "" {
			return &entries[i]
		}
	}
	for i := range entries {
		if entries[i].NumberOfPages > 0 {
			return &entries[i]
		}
	}
	if len(entries) > 0 {
		return &entries[0]
	}
	return nil
}
