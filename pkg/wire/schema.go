// Package wire validates covenant, receipt, breach attestation, and
// identity documents against their JSON Schemas at the serialization
// boundary (spec §6), the way the teacher's firewall validates tool call
// parameters before dispatch.
package wire

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentKind names one of the four wire-format document types.
type DocumentKind string

const (
	KindCovenant DocumentKind = "covenant"
	KindReceipt  DocumentKind = "receipt"
	KindBreach   DocumentKind = "breach"
	KindIdentity DocumentKind = "identity"
)

var (
	compileOnce sync.Once
	schemas     map[DocumentKind]*jsonschema.Schema
	compileErr  error
)

func compile() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	schemas = make(map[DocumentKind]*jsonschema.Schema)

	for kind, src := range rawSchemas {
		url := fmt.Sprintf("https://covenantproto.local/wire/%s.schema.json", kind)
		if err := c.AddResource(url, strings.NewReader(src)); err != nil {
			compileErr = fmt.Errorf("wire schema load failed for %s: %w", kind, err)
			return
		}
		compiled, err := c.Compile(url)
		if err != nil {
			compileErr = fmt.Errorf("wire schema compile failed for %s: %w", kind, err)
			return
		}
		schemas[kind] = compiled
	}
}

// Validate checks doc (already unmarshaled into map[string]any or a
// json.Number-friendly structure) against kind's JSON Schema.
func Validate(kind DocumentKind, doc any) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}
	schema, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("wire: unknown document kind %q", kind)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("wire: %s schema validation failed: %w", kind, err)
	}
	return nil
}
