package model

import (
	"context"

	internalmodel "github.com/goliatone/go-pagetags/internal/model"
)

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

// Widget re-exports the internal Widget enumeration.
type Widget = internalmodel.Widget

const (
	WidgetText     = internalmodel.WidgetText
	WidgetEmail    = internalmodel.WidgetEmail
	WidgetPassword = internalmodel.WidgetPassword
	WidgetNumber   = internalmodel.WidgetNumber
	WidgetCheckbox = internalmodel.WidgetCheckbox
	WidgetTextarea = internalmodel.WidgetTextarea
	WidgetSelect   = internalmodel.WidgetSelect
	WidgetHidden   = internalmodel.WidgetHidden
)

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// ErrOperationNotFound is returned by FromOpenAPI for unknown operation ids.
var ErrOperationNotFound = internalmodel.ErrOperationNotFound

// FromOpenAPI builds a FormModel from the JSON request body of an OpenAPI 3
// operation.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (FormModel, error) {
	return internalmodel.FromOpenAPI(ctx, raw, operationID)
}

// DefaultLabeler exposes the label derivation used when a field has no label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
