// Package extract derives candidate profile fields from resume text.
//
// Every extractor is a cascade of stages tried left to right; the first stage
// that finds a value wins and a cascade that finds nothing reports ok == false.
// Extractors never return errors.
package extract

// Stage is one step of a fallback chain.
type Stage[T any] func() (T, bool)

// First runs stages in order and returns the first successful result.
func First[T any](stages ...Stage[T]) (T, bool) {
	for _, stage := range stages {
		if stage == nil {
			continue
		}
		if v, ok := stage(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
