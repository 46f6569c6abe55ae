package model

import "fmt"

// RelationType is one of the four ordering semantics a relation can carry.
type RelationType int

const (
	StartToStart RelationType = iota
	FinishToStart
	FinishToFinish
	StartToFinish
)

// String returns the conventional two-letter abbreviation.
func (t RelationType) String() string {
	switch t {
	case StartToStart:
		return "SS"
	case FinishToStart:
		return "FS"
	case FinishToFinish:
		return "FF"
	case StartToFinish:
		return "SF"
	}
	return fmt.Sprintf("RelationType(%d)", int(t))
}

// ParseRelationType accepts the two-letter abbreviations used in project files.
func ParseRelationType(s string) (RelationType, error) {
	switch s {
	case "SS":
		return StartToStart, nil
	case "FS":
		return FinishToStart, nil
	case "FF":
		return FinishToFinish, nil
	case "SF":
		return StartToFinish, nil
	}
	return 0, fmt.Errorf("unknown relation type %q: expected SS, FS, FF, or SF", s)
}

// Hardness states whether a relation constraint must hold or is advisory.
type Hardness int

const (
	Strong Hardness = iota
	Rubber
)

func (h Hardness) String() string {
	switch h {
	case Strong:
		return "Strong"
	case Rubber:
		return "Rubber"
	}
	return fmt.Sprintf("Hardness(%d)", int(h))
}

// ParseHardness accepts the canonical capitalized names.
func ParseHardness(s string) (Hardness, error) {
	switch s {
	case "Strong":
		return Strong, nil
	case "Rubber":
		return Rubber, nil
	}
	return 0, fmt.Errorf("unknown hardness %q: expected Strong or Rubber", s)
}

// Relation is a directed ordering constraint between two tasks. It is owned
// by the predecessor: external formats attach it to the predecessor's node
// and name the successor there, so the model stores it the same way and
// derives both lookup directions from this single record.
type Relation struct {
	Predecessor int
	Successor   int
	Type        RelationType
	Lag         int // working days; negative is lead
	Hardness    Hardness
}
