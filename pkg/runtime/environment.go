package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefined is returned (wrapped with the name) when a lookup misses.
var ErrUndefined = errors.New("undefined variable")

// binding is a node of an immutable, newest-first list. Nodes are shared
// between environment handles and never modified after creation.
type binding struct {
	name  string
	value Value
	next  *binding
}

// Environment provides lexical scoping for runtime values.
//
// A scope is a persistent list of bindings plus a frozen parent. Define
// only moves this handle's head, so any handle obtained earlier through
// Capture keeps seeing exactly the bindings that existed at that moment.
type Environment struct {
	head   *binding
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Depth counts the scopes between e and the global scope.
func (e *Environment) Depth() int {
	depth := 0
	for cur := e.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.head = &binding{name: name, value: value, next: e.head}
}

// Lookup finds a binding, searching outward through the scope chain.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		for b := env.head; b != nil; b = b.next {
			if b.name == name {
				return b.value, true
			}
		}
	}
	return nil, false
}

// Get is Lookup with an error naming the missing variable.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefined, name)
}

// Capture returns a handle that observes the current bindings and nothing
// defined afterwards, in this scope or any enclosing one. Binding nodes are
// shared; only the scope handles of the chain are copied.
func (e *Environment) Capture() *Environment {
	if e == nil {
		return nil
	}
	return &Environment{head: e.head, parent: e.parent.Capture()}
}

// Extend opens a child scope over a frozen capture of e.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e.Capture())
}

// Keys returns the names bound in the innermost scope, sorted.
func (e *Environment) Keys() []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for b := e.head; b != nil; b = b.next {
		if _, ok := seen[b.name]; ok {
			continue
		}
		seen[b.name] = struct{}{}
		keys = append(keys, b.name)
	}
	sort.Strings(keys)
	return keys
}

// Bindings flattens every visible binding; inner scopes win.
func (e *Environment) Bindings() map[string]Value {
	out := make(map[string]Value)
	for env := e; env != nil; env = env.parent {
		for b := env.head; b != nil; b = b.next {
			if _, ok := out[b.name]; !ok {
				out[b.name] = b.value
			}
		}
	}
	return out
}
