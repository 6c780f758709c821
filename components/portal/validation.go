package portal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FormDefinition names a form payload and the schema it must satisfy
// before any network request is issued.
type FormDefinition struct {
	Code   string
	Schema map[string]any
}

// FormValidator validates form payloads against their schema.
type FormValidator interface {
	Validate(def FormDefinition, form map[string]any) error
}

// JSONSchemaValidator compiles form schemas once and validates payload maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the payload satisfies the form schema.
func (v *JSONSchemaValidator) Validate(def FormDefinition, form map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	var payload map[string]any
	if form == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(form)
		if err != nil {
			return fmt.Errorf("portal: marshal form %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("portal: normalize form %s: %w", def.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("portal: form %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def FormDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("portal: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("portal: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("portal: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func requiredStringSchema(fields ...string) map[string]any {
	props := map[string]any{}
	for _, field := range fields {
		props[field] = map[string]any{"type": "string", "minLength": 1}
	}
	return map[string]any{
		"type":       "object",
		"required":   fields,
		"properties": props,
	}
}

// SignupForm, AppointmentForm, ContactForm and RatingForm are the form
// payloads validated before dispatch.
var (
	SignupForm = FormDefinition{
		Code:   "signup",
		Schema: requiredStringSchema("name", "email", "password", "confirmPassword"),
	}
	AppointmentForm = FormDefinition{
		Code:   "appointment",
		Schema: requiredStringSchema("name", "email", "phone", "doctor", "appointment_date"),
	}
	ContactForm = FormDefinition{
		Code:   "contact",
		Schema: requiredStringSchema("name", "email", "message"),
	}
	RatingForm = FormDefinition{
		Code: "rating",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"doctor_name", "rating", "review_text"},
			"properties": map[string]any{
				"doctor_name": map[string]any{"type": "string", "minLength": 1},
				"rating":      map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"review_text": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
)
