package ai

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// Interaction names one kind of model exchange and its payload schema.
type Interaction string

const (
	InteractionPairs   Interaction = "pairs"
	InteractionPhrases Interaction = "phrases"
	InteractionWeights Interaction = "weights"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemaMu    sync.Mutex
	schemaCache = make(map[Interaction]*gojsonschema.Schema)
)

// PayloadError reports a model response that could not be parsed or does not
// satisfy the interaction schema.
type PayloadError struct {
	Interaction Interaction
	Problems    []string
	Err         error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s payload: %v", e.Interaction, e.Err)
	}
	return fmt.Sprintf("%s payload: %s", e.Interaction, strings.Join(e.Problems, "; "))
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// ExtractJSON strips markdown code fences around a model response.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```JSON")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// Decode parses raw, validates it against the schema of interaction and
// decodes it into out.
func Decode(interaction Interaction, raw string, out any) error {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return &PayloadError{Interaction: interaction, Problems: []string{"empty response"}}
	}

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return &PayloadError{Interaction: interaction, Err: fmt.Errorf("parse json: %w", err)}
	}

	schema, err := loadSchema(interaction)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return &PayloadError{Interaction: interaction, Err: fmt.Errorf("validate: %w", err)}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, field+": "+desc.Description())
		}
		return &PayloadError{Interaction: interaction, Problems: problems}
	}

	if err := mapstructure.Decode(data, out); err != nil {
		return &PayloadError{Interaction: interaction, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func loadSchema(interaction Interaction) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if schema, ok := schemaCache[interaction]; ok {
		return schema, nil
	}

	content, err := schemaFS.ReadFile("schemas/" + string(interaction) + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown interaction %q: %w", interaction, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, fmt.Errorf("load %s schema: %w", interaction, err)
	}
	schemaCache[interaction] = schema
	return schema, nil
}
