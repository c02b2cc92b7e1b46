package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var personSchema = &Schema{
	Name: "test-person",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"name", "age"},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name": "Minh", "age": 12}`, false},
		{"missing required field", `{"name": "Minh"}`, true},
		{"wrong type", `{"name": "Minh", "age": "twelve"}`, true},
		{"extra property", `{"name": "Minh", "age": 12, "city": "Huế"}`, true},
		{"negative age", `{"name": "Minh", "age": -1}`, true},
		{"not json", `{"name":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(personSchema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Errorf("expected *ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_CachedCompilation(t *testing.T) {
	// Second validation for the same schema name hits the cache; both
	// must agree.
	raw := json.RawMessage(`{"name": "Minh", "age": 12}`)
	if err := validateResponse(personSchema, raw); err != nil {
		t.Fatal(err)
	}
	if err := validateResponse(personSchema, raw); err != nil {
		t.Errorf("cached validation failed: %v", err)
	}
}
