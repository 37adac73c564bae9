package dhall

import (
	"dhallgen/internal/match"
)

// maxSuggestDistance bounds how far a misspelling may be from a known name
// before no suggestion is offered.
const maxSuggestDistance = 2

// suggest returns a "did you mean" sentence naming the candidate closest to
// name, or "" if none is close enough.
func suggest(name string, candidates []string) string {
	return match.Suggestion(name, candidates, maxSuggestDistance)
}
