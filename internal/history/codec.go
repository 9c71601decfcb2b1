package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownKind is returned when decoding an action whose kind was never
// registered.
var ErrUnknownKind = errors.New("unknown action kind")

var (
	registryMu sync.RWMutex
	registry   = map[Kind]func() Action{
		KindCreateElements:  func() Action { return new(CreateElements) },
		KindDeleteElements:  func() Action { return new(DeleteElements) },
		KindSelectionChange: func() Action { return new(SelectionChange) },
	}
)

// Register makes a new action kind decodable. Its encoded form must carry a
// "kind" field.
func Register(kind Kind, newAction func() Action) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = newAction
}

func lookup(kind Kind) (func() Action, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[kind]
	return f, ok
}

func (a *CreateElements) MarshalJSON() ([]byte, error) {
	type plain CreateElements
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindCreateElements, (*plain)(a)})
}

func (a *DeleteElements) MarshalJSON() ([]byte, error) {
	type plain DeleteElements
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindDeleteElements, (*plain)(a)})
}

func (a *SelectionChange) MarshalJSON() ([]byte, error) {
	type plain SelectionChange
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindSelectionChange, (*plain)(a)})
}

// UnmarshalAction decodes one tagged action.
func UnmarshalAction(data []byte) (Action, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	newAction, ok := lookup(head.Kind)
	if !ok {
		return nil, fmt.Errorf("decode action %q: %w", head.Kind, ErrUnknownKind)
	}
	a := newAction()
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Kind, err)
	}
	return a, nil
}

// Log is an ordered list of actions, oldest first.
type Log []Action

func (l Log) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Action(l))
}

func (l *Log) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode log: %w", err)
	}
	out := make(Log, 0, len(raws))
	for i, raw := range raws {
		a, err := UnmarshalAction(raw)
		if err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}
