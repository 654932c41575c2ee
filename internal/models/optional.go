package models

import "encoding/json"

// Optional is a patch field for a nullable column. Set records that the key was present in
// the request body, so an explicit null (Set, Value == nil) clears the column while an
// absent key leaves it alone.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only called when the key is present, null included.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Column returns the value to store: nil for an explicit null.
func (o Optional[T]) Column() any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}
