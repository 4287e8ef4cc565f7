package model

import (
	"database/sql"
	"encoding/json"
)

// NullableString is sql.NullString that marshals to a JSON string or null.
type NullableString struct {
	sql.NullString
}

func NewNullableString(s string) NullableString {
	return NullableString{sql.NullString{String: s, Valid: true}}
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullableString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = NewNullableString(s)
	return nil
}
