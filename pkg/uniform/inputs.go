package uniform

import "strings"

// InputKind names an auxiliary input. Each kind renders from the template
// inputs/<kind>.tmpl.
type InputKind string

const (
	KindSubmit InputKind = "submit"
	KindReset  InputKind = "reset"
	KindHidden InputKind = "hidden"
	KindButton InputKind = "button"
)

// Input is an auxiliary control rendered after the form fields.
type Input struct {
	Kind  InputKind
	Name  string
	Value string
}

func Submit(name, value string) Input { return Input{Kind: KindSubmit, Name: name, Value: value} }
func Reset(name, value string) Input  { return Input{Kind: KindReset, Name: name, Value: value} }
func Hidden(name, value string) Input { return Input{Kind: KindHidden, Name: name, Value: value} }
func Button(name, value string) Input { return Input{Kind: KindButton, Name: name, Value: value} }

// TemplateName is the template the input renders from.
func (i Input) TemplateName() string {
	kind := strings.TrimSpace(string(i.Kind))
	if kind == "" {
		kind = string(KindButton)
	}
	return "templates/inputs/" + kind
}

// ID returns the DOM id, "<kind>-id-<name>". Hidden inputs have none.
func (i Input) ID() string {
	if i.Kind == KindHidden {
		return ""
	}
	name := strings.ToLower(strings.TrimSpace(i.Name))
	if name == "" {
		return ""
	}
	return string(i.Kind) + "-id-" + name
}

func (i Input) view() map[string]any {
	return map[string]any{
		"kind":  string(i.Kind),
		"name":  strings.TrimSpace(i.Name),
		"value": i.Value,
		"id":    i.ID(),
	}
}
