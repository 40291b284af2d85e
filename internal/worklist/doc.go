// Package worklist expands a set of target URLs and a repetition count into the
// ordered list of GET requests a run executes.
//
// Targets come from a single URL or from a newline-delimited file:
//
//	targets, err := worklist.FromFile("urls.txt")
//	if err != nil {
//		return err // *SourceReadError or *ParseError
//	}
//	list, err := worklist.Build(targets, 3)
//
// The list repeats the whole target set pass by pass, so for targets [a b] and
// three repetitions the order is a b a b a b.
package worklist
