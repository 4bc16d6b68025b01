package model

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when the requested operationId is absent.
var ErrOperationNotFound = errors.New("model: operation not found")

const jsonContentType = "application/json"

// FromOpenAPI loads an OpenAPI 3 document and converts the JSON request body
// of the named operation into a FormModel. Only top-level scalar properties
// become fields; nested objects and arrays are skipped.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (FormModel, error) {
	if err := ctx.Err(); err != nil {
		return FormModel{}, err
	}
	if len(raw) == 0 {
		return FormModel{}, errors.New("model: openapi document is empty")
	}
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return FormModel{}, errors.New("model: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return FormModel{}, fmt.Errorf("model: load openapi document: %w", err)
	}
	if doc.Paths == nil {
		return FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			form := FormModel{
				OperationID: operationID,
				Endpoint:    path,
				Method:      strings.ToUpper(method),
				Summary:     operation.Summary,
				Description: operation.Description,
			}
			form.Fields = fieldsFromRequestBody(operation.RequestBody)
			return form, nil
		}
	}
	return FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func fieldsFromRequestBody(body *openapi3.RequestBodyRef) []Field {
	if body == nil || body.Value == nil {
		return nil
	}
	media := body.Value.Content.Get(jsonContentType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fieldType, ok := scalarType(ref.Value.Type)
		if !ok {
			continue
		}
		_, isRequired := required[name]
		field := Field{
			Name:     name,
			Type:     fieldType,
			Format:   ref.Value.Format,
			Required: isRequired,
			Label:    ref.Value.Title,
			HelpText: ref.Value.Description,
			Default:  ref.Value.Default,
		}
		if len(ref.Value.Enum) > 0 {
			field.Enum = append([]any(nil), ref.Value.Enum...)
		}
		if ref.Value.MaxLength != nil {
			field.MaxLength = int(*ref.Value.MaxLength)
		}
		fields = append(fields, field)
	}
	return fields
}

func scalarType(types *openapi3.Types) (FieldType, bool) {
	if types == nil {
		return FieldTypeString, true
	}
	for _, candidate := range types.Slice() {
		switch candidate {
		case "string":
			return FieldTypeString, true
		case "integer":
			return FieldTypeInteger, true
		case "number":
			return FieldTypeNumber, true
		case "boolean":
			return FieldTypeBoolean, true
		}
	}
	return "", false
}
