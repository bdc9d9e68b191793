package out

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"niamverse/internal/modules/catalog/domain"
	catalogout "niamverse/internal/modules/catalog/port/out"
)

const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["games"],
  "properties": {
    "games": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "genre": {"type": "string"},
          "featured": {"type": "boolean"},
          "about": {"type": "string"},
          "link": {"type": "string"},
          "popularity": {"type": "string"},
          "releaseDate": {"type": "string"},
          "build": {"type": "string"},
          "developer": {"type": "string"},
          "controls": {"type": "string"}
        }
      }
    }
  }
}`

// SchemaDecoder validates a catalog against the games schema before decoding it.
type SchemaDecoder struct {
	schema *gojsonschema.Schema
}

func NewSchemaDecoder() *SchemaDecoder {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(catalogSchema))
	if err != nil {
		panic(fmt.Sprintf("catalog schema: %v", err))
	}
	return &SchemaDecoder{schema: schema}
}

var _ catalogout.DocumentDecoder = (*SchemaDecoder)(nil)

func (d *SchemaDecoder) Decode(raw domain.RawDocument) (domain.Document, error) {
	if len(bytes.TrimSpace(raw.Data)) == 0 {
		return domain.Document{}, fmt.Errorf("empty document")
	}
	switch raw.Format {
	case domain.FormatYAML:
		return d.decodeYAML(raw.Data)
	default:
		return d.decodeJSON(raw.Data)
	}
}

func (d *SchemaDecoder) decodeJSON(data []byte) (domain.Document, error) {
	if err := d.validate(gojsonschema.NewBytesLoader(data)); err != nil {
		return domain.Document{}, err
	}
	doc := domain.Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("unmarshal json: %w", err)
	}
	return doc, nil
}

func (d *SchemaDecoder) decodeYAML(data []byte) (domain.Document, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return domain.Document{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := d.validate(gojsonschema.NewGoLoader(generic)); err != nil {
		return domain.Document{}, err
	}
	doc := domain.Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return doc, nil
}

func (d *SchemaDecoder) validate(loader gojsonschema.JSONLoader) error {
	result, err := d.schema.Validate(loader)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}
