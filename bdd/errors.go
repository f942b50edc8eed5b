// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
	"fmt"
	"log"
)

// Error returns the error status of the BDD. We return an empty string if
// there are no errors.
func (b *BDD) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	return b.error != nil
}

// Err returns the error status of the BDD as a value that can be wrapped.
func (b *BDD) Err() error {
	return b.error
}

func (b *BDD) seterror(format string, a ...interface{}) Node {
	if b.error != nil {
		format = format + "; " + b.Error()
		b.error = fmt.Errorf(format, a...)
		return nil
	}
	b.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(b.error)
	}
	return nil
}

// checkptr performs a sanity check prior to accessing a node and returns an
// error if the node is not valid.
func (b *BDD) checkptr(n Node) error {
	switch {
	case b.error != nil:
		return b.error
	case n == nil:
		return errors.New("nil node")
	case *n < 0 || (*n>>1) >= len(b.nodes):
		return fmt.Errorf("node reference %d out of range", *n)
	case (*n>>1) > 0 && b.nodes[*n>>1].low == -1:
		return fmt.Errorf("node %d is not in use", *n>>1)
	}
	return nil
}
