package model

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Widget names the HTML control a field renders as.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetEmail    Widget = "email"
	WidgetPassword Widget = "password"
	WidgetNumber   Widget = "number"
	WidgetCheckbox Widget = "checkbox"
	WidgetTextarea Widget = "textarea"
	WidgetSelect   Widget = "select"
	WidgetHidden   Widget = "hidden"
)

// Field models a single input inside a form. Struct fields carry JSON tags so
// fixtures and template contexts can serialise them directly.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Widget      Widget            `json:"widget,omitempty"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	HelpText    string            `json:"helpText,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	MaxLength   int               `json:"maxLength,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the form definition layout helpers consume.
type FormModel struct {
	OperationID string            `json:"operationId,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ControlID returns the DOM id rendered for the field's control.
func (f Field) ControlID() string {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ""
	}
	return "id_" + name
}

// DisplayLabel returns the explicit label or one derived from the name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// ResolveWidget picks the control for a field. An explicit Widget wins, then
// the format, enum and type decide.
func (f Field) ResolveWidget() Widget {
	if f.Widget != "" {
		return f.Widget
	}
	switch strings.ToLower(strings.TrimSpace(f.Format)) {
	case "password":
		return WidgetPassword
	case "email":
		return WidgetEmail
	case "textarea", "multiline":
		return WidgetTextarea
	}
	if len(f.Enum) > 0 {
		return WidgetSelect
	}
	switch f.Type {
	case FieldTypeBoolean:
		return WidgetCheckbox
	case FieldTypeInteger, FieldTypeNumber:
		return WidgetNumber
	default:
		return WidgetText
	}
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
