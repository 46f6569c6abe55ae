package hclproject

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/model"
)

// convertValue turns an HCL value into a typed property value. The
// declared property type is authoritative: the HCL value is converted to
// it or rejected, never sniffed.
func convertValue(v cty.Value, t model.PropertyType) (model.PropertyValue, error) {
	if v.IsNull() {
		return model.PropertyValue{}, fmt.Errorf("property value is null")
	}

	out := model.PropertyValue{Type: t}
	switch t {
	case model.PropertyText:
		converted, err := convert.Convert(v, cty.String)
		if err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use %s as text: %w", v.Type().FriendlyName(), err)
		}
		out.Text = converted.AsString()
	case model.PropertyInt:
		converted, err := convert.Convert(v, cty.Number)
		if err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use %s as int: %w", v.Type().FriendlyName(), err)
		}
		if err := gocty.FromCtyValue(converted, &out.Int); err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use value as int: %w", err)
		}
	case model.PropertyBoolean:
		converted, err := convert.Convert(v, cty.Bool)
		if err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use %s as boolean: %w", v.Type().FriendlyName(), err)
		}
		out.Bool = converted.True()
	case model.PropertyDate:
		converted, err := convert.Convert(v, cty.String)
		if err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use %s as date: %w", v.Type().FriendlyName(), err)
		}
		date, err := calendar.ParseDate(converted.AsString())
		if err != nil {
			return model.PropertyValue{}, err
		}
		out.Date = date
	case model.PropertyDouble:
		converted, err := convert.Convert(v, cty.Number)
		if err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use %s as double: %w", v.Type().FriendlyName(), err)
		}
		if err := gocty.FromCtyValue(converted, &out.Double); err != nil {
			return model.PropertyValue{}, fmt.Errorf("cannot use value as double: %w", err)
		}
	default:
		return model.PropertyValue{}, fmt.Errorf("unknown property type %v", t)
	}
	return out, nil
}
