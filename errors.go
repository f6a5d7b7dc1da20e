package dilab

import (
	"fmt"
	"strings"
)

// AmbiguousCandidatesError is returned when several components expose the same
// type and none of them is marked Primary.
type AmbiguousCandidatesError struct {
	Slot       string
	Candidates []string
}

func (e *AmbiguousCandidatesError) Error() string {
	return fmt.Sprintf("%d candidates for %s and none is primary: %s",
		len(e.Candidates), e.Slot, strings.Join(e.Candidates, ", "))
}

// MultiplePrimaryError is returned when more than one component exposing the
// same type is marked Primary.
type MultiplePrimaryError struct {
	Slot      string
	Primaries []string
}

func (e *MultiplePrimaryError) Error() string {
	return fmt.Sprintf("more than one primary candidate for %s: %s",
		e.Slot, strings.Join(e.Primaries, ", "))
}
