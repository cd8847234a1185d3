// Package slice resolves slice descriptors into sequence indexes.
//
// A descriptor has the form "i:j:k" where the start i, the exclusive stop j
// and the step k are optional signed integers. Resolving a descriptor against
// a sequence length yields the ordered list of indexes it selects, following
// the slicing rules of scripting languages:
//
//	slice.Resolve("::2", 5)      // [0 2 4]
//	slice.Resolve("::-1", 5)     // [4 3 2 1 0]
//	slice.Resolve("-3:3:-1", 10) // [7 6 5 4]
//	slice.Resolve("4:3:1", 7)    // [] (applies, selects nothing)
//	slice.Resolve("", 7)         // nil (no restriction)
//
// # Defaults
//
// Empty fields are defaulted against the sign of the step. With a positive
// step start is 0 and stop is the length; with a negative step start is the
// last index and stop sits one before index 0. A missing step is 1.
//
// Negative start and stop values count from the end of the sequence.
//
// A bare integer "i" selects from i to the end of the sequence. It is not a
// single element lookup:
//
//	slice.Resolve("1", 5)  // [1 2 3 4]
//	slice.Resolve("-1", 5) // [4]
//
// # Errors
//
// Descriptors with more than three fields, non-integer fields, or a zero step
// fail with a *DescriptorError that matches ErrMalformedDescriptor:
//
//	_, err := slice.Resolve("1:2:0", 2)
//	errors.Is(err, slice.ErrMalformedDescriptor) // true
//	err.Error() // "Illegal slice argument, k cannot be zero"
//
// # Thread Safety
//
// Resolve is a pure function and may be called from any number of goroutines.
package slice
