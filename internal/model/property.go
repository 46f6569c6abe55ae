package model

import (
	"fmt"
	"strconv"

	"github.com/vk/ganttgen/internal/calendar"
)

// PropertyType is the declared value type of a custom task property.
type PropertyType int

const (
	PropertyText PropertyType = iota
	PropertyInt
	PropertyBoolean
	PropertyDate
	PropertyDouble
)

// String returns the lowercase wire name of the type.
func (t PropertyType) String() string {
	switch t {
	case PropertyText:
		return "text"
	case PropertyInt:
		return "int"
	case PropertyBoolean:
		return "boolean"
	case PropertyDate:
		return "date"
	case PropertyDouble:
		return "double"
	}
	return fmt.Sprintf("PropertyType(%d)", int(t))
}

// ParsePropertyType accepts the lowercase wire names.
func ParsePropertyType(s string) (PropertyType, error) {
	switch s {
	case "text":
		return PropertyText, nil
	case "int":
		return PropertyInt, nil
	case "boolean":
		return PropertyBoolean, nil
	case "date":
		return PropertyDate, nil
	case "double":
		return PropertyDouble, nil
	}
	return 0, fmt.Errorf("unknown property type %q: expected text, int, boolean, date, or double", s)
}

// PropertyDefinition declares a custom task property. The declared type is
// the single source of truth for interpreting values stored against it;
// value types are never inferred from string contents.
type PropertyDefinition struct {
	ID      string // e.g. "tpc0"
	Name    string
	Type    PropertyType
	Default string // canonical string form, empty when unset
}

// PropertyValue is a typed custom property value. Only the field matching
// Type is meaningful; the codec converts to and from the wire's string form
// through Canonical and ParsePropertyValue.
type PropertyValue struct {
	Type   PropertyType
	Text   string
	Int    int
	Bool   bool
	Date   calendar.Date
	Double float64
}

// Canonical returns the value's canonical string form used on the wire.
func (v PropertyValue) Canonical() string {
	switch v.Type {
	case PropertyText:
		return v.Text
	case PropertyInt:
		return strconv.Itoa(v.Int)
	case PropertyBoolean:
		return strconv.FormatBool(v.Bool)
	case PropertyDate:
		return v.Date.String()
	case PropertyDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	}
	return ""
}

// ParsePropertyValue interprets a wire string through a declared type.
func ParsePropertyValue(t PropertyType, s string) (PropertyValue, error) {
	v := PropertyValue{Type: t}
	switch t {
	case PropertyText:
		v.Text = s
	case PropertyInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("property value %q is not an int", s)
		}
		v.Int = n
	case PropertyBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("property value %q is not a boolean", s)
		}
		v.Bool = b
	case PropertyDate:
		d, err := calendar.ParseDate(s)
		if err != nil {
			return PropertyValue{}, err
		}
		v.Date = d
	case PropertyDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("property value %q is not a double", s)
		}
		v.Double = f
	default:
		return PropertyValue{}, fmt.Errorf("unknown property type %v", t)
	}
	return v, nil
}
