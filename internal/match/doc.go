// Package match finds the known identifier closest to a misspelled one.
//
// Diagnostics use it to append "did you mean" hints:
//   - Distance: edit distance between two identifiers, rune based
//   - Similarity: distance scaled to [0, 1] after folding case and separators
//   - Rank, Closest and Hint: candidate selection
package match
