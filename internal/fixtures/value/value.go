// Package value has a name generated code likes to use for parameters.
package value

type T struct {
	N int
}
