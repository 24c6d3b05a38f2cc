package handlers

import (
	"bytes"
	"encoding/json"
)

// fieldText is a form field sent either as a JSON string or a JSON number.
// Any other JSON value reads as blank.
type fieldText string

func (f *fieldText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = fieldText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = fieldText(n.String())
		return nil
	}

	*f = ""
	return nil
}
