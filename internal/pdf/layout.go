package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lawliet8886/RPA/internal/common"
)

// Field positions one overlaid value on one page. Coordinates are A4 points
// measured from the top-left corner, matching the calibration that produced
// the template page images.
type Field struct {
	Page     int     `json:"page"`
	Key      string  `json:"key"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	TextSize float64 `json:"text_size"`
}

// DefaultLayout is the calibrated field table for the standard three-page
// service-order template.
func DefaultLayout() []Field {
	return []Field{
		// page 1
		{Page: 0, Key: "nome_profissional", X: 205, Y: 273, Width: 340, TextSize: 10.5},
		{Page: 0, Key: "funcao", X: 88, Y: 287, Width: 260, TextSize: 10.5},
		{Page: 0, Key: "cpf", X: 395, Y: 287, Width: 170, TextSize: 10.5},
		{Page: 0, Key: "pis", X: 125, Y: 300, Width: 220, TextSize: 10.5},
		{Page: 0, Key: "endereco", X: 120, Y: 313, Width: 430, TextSize: 10},

		// page 3
		{Page: 2, Key: "funcao", X: 108, Y: 300, Width: 340, TextSize: 10.5},
		{Page: 2, Key: "datas_prestacao_servico", X: 88, Y: 386, Width: 460, TextSize: 10.5},
		{Page: 2, Key: "data_envio_os", X: 355, Y: 720, Width: 160, TextSize: 10.5},
	}
}

const layoutSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["page", "key", "x", "y", "width", "text_size"],
    "properties": {
      "page": {"type": "integer", "minimum": 0},
      "key": {"type": "string", "minLength": 1},
      "x": {"type": "number", "minimum": 0},
      "y": {"type": "number", "minimum": 0},
      "width": {"type": "number", "exclusiveMinimum": 0},
      "text_size": {"type": "number", "exclusiveMinimum": 0}
    },
    "additionalProperties": false
  }
}`

var compiledLayoutSchema = jsonschema.MustCompileString("layout.schema.json", layoutSchema)

// LoadLayout parses and validates an external field-layout JSON, for template
// sets calibrated differently from the default.
func LoadLayout(data []byte) ([]Field, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, common.NewAppError("LAYOUT_PARSE", "layout is not valid JSON", err)
	}
	if err := compiledLayoutSchema.Validate(doc); err != nil {
		return nil, common.NewAppError("LAYOUT_SCHEMA", "layout does not match schema", err)
	}
	var fields []Field
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return nil, common.NewAppError("LAYOUT_PARSE", fmt.Sprintf("decode layout: %v", err), err)
	}
	return fields, nil
}
