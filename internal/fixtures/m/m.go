// Package m has a name generated code likes to use for receivers.
package m

type Meter struct {
	Reading float64
}
