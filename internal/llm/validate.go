package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas keyed by Schema.Name.
var schemaCache sync.Map

// validateResponse reports whether raw satisfies schema. Every failure is an
// *ErrInvalidResponse so the caller keeps the reply for recovery. A nil
// schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	reject := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return reject("invalid JSON: %w", err)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return reject("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return reject("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := schemaCache.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// Round trip through JSON so Go values such as []string become the
	// generic shapes the compiler expects.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	resource, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}

	url := "mem://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, resource); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	v, _ := schemaCache.LoadOrStore(schema.Name, compiled)
	return v.(*jsonschema.Schema), nil
}
