package bean

import (
	"fmt"
	"strings"
)

// Scope is the lifetime policy of a bean.
type Scope string

const (
	// Singleton beans are created once per container and shared by every caller.
	Singleton Scope = "singleton"

	// Prototype beans are created on every lookup and never tracked afterwards.
	Prototype Scope = "prototype"
)

// ParseScope normalizes a scope name. Matching is case-insensitive and an
// empty string means Singleton.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Singleton):
		return Singleton, nil
	case string(Prototype):
		return Prototype, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
}

func (s Scope) String() string { return string(s) }
