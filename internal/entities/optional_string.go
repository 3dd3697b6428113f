package entities

import "encoding/json"

// OptionalString distinguishes an omitted JSON field from an explicit null.
// For admin notes the distinction matters: omitted leaves the stored notes
// untouched, null clears them, a value overwrites them.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// StringValue returns a non-nil OptionalString holding s.
func StringValue(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// NullString returns an explicit-null OptionalString.
func NullString() OptionalString {
	return OptionalString{Set: true}
}
