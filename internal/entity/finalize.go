package entity

import "fmt"

// finalized is embedded by every builder. mark is called on the first
// Finalize; mustMutable guards every mutator entry.
type finalized struct {
	done bool
}

func (f *finalized) mark() {
	f.done = true
}

func (f *finalized) mustMutable(entity string) {
	if f.done {
		panic(fmt.Sprintf("entity: %s mutated after finalize", entity))
	}
}
