package kv

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrKeyNotFound  = errors.New("key not found")

	// ErrConcurrentModification is the panic value raised when a map is
	// structurally modified while one of its traversals is in progress.
	ErrConcurrentModification = errors.New("map modified during traversal")
)

// KeyError records the operation and key that violated the contract.
type KeyError struct {
	Op  string
	Key any
	Err error
}

func (e *KeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("kv: %s %v: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func duplicateKey(key any) error {
	return &KeyError{Op: "insert", Key: key, Err: ErrDuplicateKey}
}

func keyNotFound(op string, key any) error {
	return &KeyError{Op: op, Key: key, Err: ErrKeyNotFound}
}
