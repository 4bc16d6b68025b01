package uniform

import (
	"strings"
)

const (
	DefaultMethod = "post"
	formBaseClass = "uniForm"
)

// FormHelper configures how a single form render is laid out. The zero value
// omits the form tag; use NewFormHelper for the usual defaults.
type FormHelper struct {
	Method string
	ID     string
	Class  string
	Action string
	// Tag controls whether the surrounding <form> element is emitted.
	Tag    bool
	Inputs []Input
}

// NewFormHelper returns a helper that emits a POST form tag.
func NewFormHelper() *FormHelper {
	return &FormHelper{Method: DefaultMethod, Tag: true}
}

// AddInput appends auxiliary inputs rendered after the fields.
func (h *FormHelper) AddInput(inputs ...Input) {
	if h == nil {
		return
	}
	for _, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			continue
		}
		h.Inputs = append(h.Inputs, input)
	}
}

// FormMethod returns the lowercased method, defaulting to post.
func (h *FormHelper) FormMethod() string {
	if h == nil {
		return DefaultMethod
	}
	method := strings.ToLower(strings.TrimSpace(h.Method))
	if method == "" {
		return DefaultMethod
	}
	return method
}

// FormClass returns the class attribute: the uniForm base class followed by
// the helper's extra classes.
func (h *FormHelper) FormClass() string {
	if h == nil {
		return formBaseClass
	}
	extra := sanitizeClassList(h.Class)
	if extra == "" {
		return formBaseClass
	}
	return formBaseClass + " " + extra
}

func (h *FormHelper) view() map[string]any {
	return map[string]any{
		"tag":    h != nil && h.Tag,
		"method": h.FormMethod(),
		"class":  h.FormClass(),
		"id":     h.formID(),
		"action": h.formAction(),
	}
}

func (h *FormHelper) formID() string {
	if h == nil {
		return ""
	}
	return strings.TrimSpace(h.ID)
}

func (h *FormHelper) formAction() string {
	if h == nil {
		return ""
	}
	return strings.TrimSpace(h.Action)
}

func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if token == formBaseClass {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
