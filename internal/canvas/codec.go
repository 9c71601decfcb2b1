package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownKind is returned when decoding an element whose kind was never
// registered.
var ErrUnknownKind = errors.New("unknown element kind")

var (
	registryMu sync.RWMutex
	registry   = map[Kind]func() Element{
		KindBrushStroke: func() Element { return new(BrushStroke) },
	}
)

// Register makes a new element kind decodable. newElement must return a
// pointer that json.Unmarshal can fill. The encoded form of the kind has to
// carry a "kind" field, as BrushStroke's does.
func Register(kind Kind, newElement func() Element) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = newElement
}

func lookup(kind Kind) (func() Element, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[kind]
	return f, ok
}

// MarshalJSON writes the stroke together with its kind tag.
func (s *BrushStroke) MarshalJSON() ([]byte, error) {
	type plain BrushStroke
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindBrushStroke, (*plain)(s)})
}

// UnmarshalElement decodes one tagged element.
func UnmarshalElement(data []byte) (Element, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}
	newElement, ok := lookup(head.Kind)
	if !ok {
		return nil, fmt.Errorf("decode element %q: %w", head.Kind, ErrUnknownKind)
	}
	e := newElement()
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Kind, err)
	}
	return e, nil
}

// Elements is an ordered list of elements that encodes as a JSON array of
// tagged objects.
type Elements []Element

func (es Elements) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Element(es))
}

func (es *Elements) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode elements: %w", err)
	}
	out := make(Elements, 0, len(raws))
	for i, raw := range raws {
		e, err := UnmarshalElement(raw)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

// ByID indexes es by element ID.
func (es Elements) ByID() map[string]Element {
	m := make(map[string]Element, len(es))
	for _, e := range es {
		m[e.ElementID()] = e
	}
	return m
}
