// Package suggest is the completion engine: a prefix index guarded by a
// read/write lock, answering ranked top-K queries while phrases are observed.
package suggest

// ICompleter defines the interface for phrase completion engines
type ICompleter interface {
	// Complete returns at most limit suggestions for prefix, best first
	Complete(prefix string, limit int) []Suggestion

	// Insert records one observation of phrase and returns its new score
	Insert(phrase string) int

	// SetScore stores phrase with an exact score
	SetScore(phrase string, score int)

	// Lookup returns the score of a stored phrase
	Lookup(phrase string) (int, bool)

	// Stats returns counters about the loaded corpus and traffic
	Stats() map[string]int
}
