// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import "github.com/sqodarbaskoro/Name2Pdf/pkg/types"

// Observer receives one push notification per processed file. It decouples
// the pipeline from whatever surface consumes progress (CLI line printer,
// progress bar, test recorder). Run never blocks on the observer beyond
// the call itself and calls it from a single goroutine, in file order.
type Observer interface {
	// OnFile is called after each file with its 1-based index, the total
	// file count, and the file's outcome.
	OnFile(index, total int, outcome types.Outcome)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(index, total int, outcome types.Outcome)

// OnFile implements Observer.
func (f ObserverFunc) OnFile(index, total int, outcome types.Outcome) {
	f(index, total, outcome)
}
