package formatter

import (
	"encoding/json"
)

type jsonFormatter struct{}

// NewJSONFormatter formats output into json
func NewJSONFormatter() jsonFormatter {
	return jsonFormatter{}
}

// Format returns the indented json output. TableContents are rendered as a
// list of objects keyed by header.
func (f jsonFormatter) Format(data func() interface{}) (string, error) {
	value := data()
	if contents, ok := value.(TableContents); ok {
		value = contents.records()
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}
