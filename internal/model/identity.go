package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identity issues task ids and UIDs. It is injected wherever projects are
// built so tests can control identity instead of relying on hidden
// process-wide state.
type Identity interface {
	// NextID returns a fresh numeric task id, never one issued before.
	NextID() int
	// NewUID returns a stable external identity string, never reused.
	NewUID() string
}

// NewIdentity returns the production identity source: sequential ids
// starting at 0 and random 32-hex-character UIDs.
func NewIdentity() Identity {
	return &randomIdentity{}
}

type randomIdentity struct {
	next int
}

func (g *randomIdentity) NextID() int {
	id := g.next
	g.next++
	return id
}

func (g *randomIdentity) NewUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSequentialIdentity returns a fully deterministic identity source for
// tests: sequential ids and UIDs of the form "uid-N".
func NewSequentialIdentity() Identity {
	return &sequentialIdentity{}
}

type sequentialIdentity struct {
	nextID  int
	nextUID int
}

func (g *sequentialIdentity) NextID() int {
	id := g.nextID
	g.nextID++
	return id
}

func (g *sequentialIdentity) NewUID() string {
	// Counted separately from NextID so callers that supply explicit ids
	// still get dense uid numbering.
	n := g.nextUID
	g.nextUID++
	return fmt.Sprintf("uid-%d", n)
}
