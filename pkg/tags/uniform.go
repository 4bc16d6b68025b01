package tags

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pagetags/pkg/model"
	"github.com/goliatone/go-pagetags/pkg/render"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

type uniFormNode struct {
	token *pongo2.Token
	args  boundArgs
}

func parseUniForm(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	args, err := parseArgs(signature{
		tag:      "uni_form",
		names:    []string{"form", "helper", "values", "errors"},
		required: 1,
	}, start, arguments)
	if err != nil {
		return nil, err
	}
	return &uniFormNode{token: start, args: args}, nil
}

func (n *uniFormNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	rawForm, perr := n.args.raw(ctx, "form")
	if perr != nil {
		return perr
	}
	form, err := formOf(rawForm)
	if err != nil {
		return ctx.OrigError(fmt.Errorf("uni_form: %w", err), n.token)
	}

	rawHelper, perr := n.args.raw(ctx, "helper")
	if perr != nil {
		return perr
	}
	helper, err := helperOf(rawHelper)
	if err != nil {
		return ctx.OrigError(fmt.Errorf("uni_form: %w", err), n.token)
	}

	rawValues, perr := n.args.raw(ctx, "values")
	if perr != nil {
		return perr
	}
	rawErrors, perr := n.args.raw(ctx, "errors")
	if perr != nil {
		return perr
	}
	opts := render.RenderOptions{Values: valuesOf(rawValues), Errors: errorsOf(rawErrors)}

	rt := active()
	if rt.forms == nil {
		return ctx.Error("uni_form: tags are not installed", n.token)
	}
	out, err := rt.forms.Render(requestContext(ctx), form, helper, opts)
	if err != nil {
		return ctx.OrigError(err, n.token)
	}
	if _, err := writer.Write(out); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}

type uniFormSetupNode struct {
	token *pongo2.Token
}

func parseUniFormSetup(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	if _, err := parseArgs(signature{tag: "uni_form_setup"}, start, arguments); err != nil {
		return nil, err
	}
	return &uniFormSetupNode{token: start}, nil
}

func (n *uniFormSetupNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	rt := active()
	if rt.forms == nil {
		return ctx.Error("uni_form_setup: tags are not installed", n.token)
	}
	out, err := rt.forms.Setup()
	if err != nil {
		return ctx.OrigError(err, n.token)
	}
	if _, err := writer.WriteString(out); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}

func filterAsUniForm(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	form, err := formOf(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:as_uni_form", OrigError: err}
	}
	rt := active()
	if rt.forms == nil {
		return nil, &pongo2.Error{Sender: "filter:as_uni_form", OrigError: fmt.Errorf("tags are not installed")}
	}
	out, err := rt.forms.RenderFields(context.Background(), form, render.RenderOptions{})
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:as_uni_form", OrigError: err}
	}
	return pongo2.AsSafeValue(string(out)), nil
}

func formOf(value any) (model.FormModel, error) {
	switch v := value.(type) {
	case model.FormModel:
		return v, nil
	case *model.FormModel:
		if v != nil {
			return *v, nil
		}
	}
	return model.FormModel{}, fmt.Errorf("form must be a model.FormModel, got %T", value)
}

func helperOf(value any) (*uniform.FormHelper, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *uniform.FormHelper:
		return v, nil
	case uniform.FormHelper:
		return &v, nil
	}
	return nil, fmt.Errorf("helper must be a *uniform.FormHelper, got %T", value)
}

func valuesOf(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case pongo2.Context:
		return map[string]any(v)
	case url.Values:
		out := make(map[string]any, len(v))
		for key := range v {
			out[key] = v.Get(key)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	}
	return nil
}

// errorsOf accepts field errors as map[string][]string or the decoded
// map[string][]any form the template engine produces.
func errorsOf(value any) map[string][]string {
	switch v := value.(type) {
	case map[string][]string:
		return v
	case map[string]any:
		out := make(map[string][]string, len(v))
		for key, item := range v {
			switch messages := item.(type) {
			case string:
				out[key] = []string{messages}
			case []string:
				out[key] = messages
			case []any:
				for _, message := range messages {
					out[key] = append(out[key], fmt.Sprint(message))
				}
			}
		}
		return out
	}
	return nil
}

func requestContext(ctx *pongo2.ExecutionContext) context.Context {
	if value, ok := lookup(ctx, RequestKey); ok {
		if r, ok := value.(*http.Request); ok && r != nil {
			return r.Context()
		}
	}
	return context.Background()
}
