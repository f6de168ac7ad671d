package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Constraints is a constraint list with tagged-union JSON encoding.
type Constraints []Constraint

// newConstraint maps each known kind to a constructor for its payload.
var newConstraint = map[Kind]func() Constraint{
	KindOverlap:                    func() Constraint { return &Overlap{} },
	KindBounds:                     func() Constraint { return &Bounds{} },
	KindSpacing:                    func() Constraint { return &Spacing{} },
	KindCount:                      func() Constraint { return &Count{} },
	KindDimension:                  func() Constraint { return &Dimension{} },
	KindCoUsage:                    func() Constraint { return &CoUsage{} },
	KindPanelSizeMapping:           func() Constraint { return &PanelSizeMapping{} },
	KindCombinatorPanelSizeMapping: func() Constraint { return &CombinatorPanelSizeMapping{} },
	KindCombinatorBrandMapping:     func() Constraint { return &CombinatorPropertyMapping{Property: MappingBrand} },
	KindCombinatorSeriesMapping:    func() Constraint { return &CombinatorPropertyMapping{Property: MappingSeries} },
	KindCombinatorCurrentMapping:   func() Constraint { return &CombinatorPropertyMapping{Property: MappingCurrent} },
	KindCombinatorPoleMapping:      func() Constraint { return &CombinatorPropertyMapping{Property: MappingPole} },
	KindCombinatorSpecMapping:      func() Constraint { return &CombinatorSpecMapping{} },
	KindGap:                        func() Constraint { return &Gap{} },
	KindMaxComponentHeight:         func() Constraint { return &MaxComponentHeight{} },
	KindNoIntersectWithPanelBounds: func() Constraint { return &NoIntersectWithPanelBounds{} },
}

// MarshalConstraint encodes c as a JSON object whose first member is "type".
func MarshalConstraint(c Constraint) ([]byte, error) {
	if u, ok := c.(*Unknown); ok {
		if len(u.Raw) == 0 {
			return nil, fmt.Errorf("marshal %s constraint: empty payload", u.Type)
		}
		return u.Raw, nil
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s constraint: %w", c.Kind(), err)
	}
	typ, _ := json.Marshal(c.Kind())

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(typ)
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	if err := writeNulls(&buf, c, body); err != nil {
		return nil, fmt.Errorf("marshal %s constraint: %w", c.Kind(), err)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeNulls appends the members decoded as explicit nulls that the typed
// encoding left out.
func writeNulls(buf *bytes.Buffer, c Constraint, body []byte) error {
	t, ok := c.(nullTracker)
	if !ok || len(t.nullMembers()) == 0 {
		return nil
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return err
	}
	for _, key := range t.nullMembers() {
		if _, ok := present[key]; ok {
			continue
		}
		k, _ := json.Marshal(key)
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteString(":null")
	}
	return nil
}

// nullKeys returns the members of a JSON object whose value is null,
// sorted, ignoring "type".
func nullKeys(data []byte) ([]string, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	var keys []string
	for k, v := range members {
		if k != "type" && string(bytes.TrimSpace(v)) == "null" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// UnmarshalConstraint decodes one constraint, dispatching on its "type".
// Unrecognized types decode to *Unknown.
func UnmarshalConstraint(data []byte) (Constraint, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode constraint: %w", err)
	}
	ctor, ok := newConstraint[head.Type]
	if !ok {
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return &Unknown{Type: head.Type, Raw: raw}, nil
	}
	c := ctor()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode %s constraint: %w", head.Type, err)
	}
	if t, ok := c.(nullTracker); ok {
		keys, err := nullKeys(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s constraint: %w", head.Type, err)
		}
		t.setNullMembers(keys)
	}
	return c, nil
}

// MarshalJSON encodes the list as an array of tagged objects.
func (cs Constraints) MarshalJSON() ([]byte, error) {
	if cs == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalConstraint(c)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an array of tagged objects.
func (cs *Constraints) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if raws == nil {
		*cs = nil
		return nil
	}
	out := make(Constraints, 0, len(raws))
	for i, raw := range raws {
		c, err := UnmarshalConstraint(raw)
		if err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
		out = append(out, c)
	}
	*cs = out
	return nil
}
