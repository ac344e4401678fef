package quote

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if schemaErr = c.AddResource("snapshot.schema.json", strings.NewReader(snapshotSchemaJSON)); schemaErr != nil {
			return
		}
		schema, schemaErr = c.Compile("snapshot.schema.json")
	})
	return schema, schemaErr
}

// ValidateSnapshot checks a snapshot against the persisted object/quote shape.
func ValidateSnapshot(s Snapshot) error {
	raw, err := json.Marshal(s.Normalized())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return ValidateJSON(raw)
}

// ValidateJSON validates an already encoded snapshot document.
func ValidateJSON(raw []byte) error {
	sch, err := snapshotSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}
