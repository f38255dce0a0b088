package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const maxBodyBytes = 64 << 10

// Request body schemas, keyed by name.
var requestSchemas = map[string]string{
	"create_session": `{
		"type": "object",
		"required": ["role", "skills"],
		"additionalProperties": false,
		"properties": {
			"role": {"type": "string", "minLength": 1, "maxLength": 200},
			"skills": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string", "minLength": 1, "maxLength": 100}
			},
			"experience_years": {"type": "integer", "minimum": 0, "maximum": 50}
		}
	}`,
	"generate_questions": `{
		"type": "object",
		"additionalProperties": false,
		"properties": {
			"count": {"type": "integer", "minimum": 1, "maximum": 10}
		}
	}`,
	"select_answer": `{
		"type": "object",
		"required": ["label"],
		"additionalProperties": false,
		"properties": {
			"label": {"type": "string", "enum": ["A", "B", "C", "D"]}
		}
	}`,
}

// schemaCache caches compiled request schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// errBadRequest marks body decoding and validation failures.
var errBadRequest = errors.New("bad request")

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	src, ok := requestSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown request schema %q", name)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// decodeBody validates the request body against the named schema and
// decodes it into dst. An empty body is treated as an empty object.
func decodeBody(r *http.Request, schemaName string, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if len(raw) > maxBodyBytes {
		return fmt.Errorf("%w: body too large", errBadRequest)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}

	sch, err := compiledSchema(schemaName)
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
