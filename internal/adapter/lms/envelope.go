package lms

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Envelope — общий конверт ответов API.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

//go:embed schema/envelope.schema.json
var envelopeSchemaJSON []byte

const envelopeSchemaURL = "https://api-smoke.local/schema/envelope.schema.json"

var envelopeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(envelopeSchemaJSON))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(envelopeSchemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(envelopeSchemaURL)
})

// ParseEnvelope проверяет тело по схеме конверта и декодирует его.
func ParseEnvelope(body []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("пустое тело ответа")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("тело ответа не является JSON: %w", err)
	}

	schema, err := envelopeSchema()
	if err != nil {
		return nil, fmt.Errorf("схема конверта не скомпилирована: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
