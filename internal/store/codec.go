package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/wyw/internal/model"
)

// ErrMalformed reports a stored value that is not a list of items.
var ErrMalformed = errors.New("malformed todo list")

const itemsSchemaURL = "todos.schema.json"

// itemsSchema describes the stored value: an array of item records. Fields
// are optional; a missing id is repaired on load.
const itemsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id":        {"type": "string"},
      "text":      {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledItemsSchema = jsonschema.MustCompileString(itemsSchemaURL, itemsSchema)

// EncodeItems serializes the whole list. A nil list encodes as an empty array.
func EncodeItems(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeItems parses a stored value. Anything that is not valid JSON, not an
// array, or holds elements of the wrong shape yields an error wrapping
// ErrMalformed.
func DecodeItems(data []byte) ([]model.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after value", ErrMalformed)
	}
	if err := compiledItemsSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}
