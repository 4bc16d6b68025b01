package tags

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags/pkg/sorting"
)

type anchorNode struct {
	token *pongo2.Token
	args  boundArgs
}

func parseAnchor(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	args, err := parseArgs(signature{
		tag:      "anchor",
		names:    []string{"field", "title", "fragment"},
		required: 1,
	}, start, arguments)
	if err != nil {
		return nil, err
	}
	return &anchorNode{token: start, args: args}, nil
}

func (n *anchorNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	r, perr := requestFrom(ctx, "anchor", n.token)
	if perr != nil {
		return perr
	}

	field, perr := n.args.str(ctx, "field")
	if perr != nil {
		return perr
	}
	if field == "" {
		return ctx.Error("anchor: field is empty", n.token)
	}
	title, perr := n.args.str(ctx, "title")
	if perr != nil {
		return perr
	}
	fragment, perr := n.args.str(ctx, "fragment")
	if perr != nil {
		return perr
	}

	link := sorting.Anchor(r, field, title, fragment, active().sortOptions()...)
	if _, err := writer.WriteString(link.HTML()); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}

// autosortNode replaces a collection variable with its sorted form.
type autosortNode struct {
	token      *pongo2.Token
	collection string
	args       boundArgs
}

func parseAutoSort(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	name := arguments.MatchType(pongo2.TokenIdentifier)
	if name == nil {
		return nil, arguments.Error("autosort: first argument must be the collection variable", start)
	}
	args, err := parseArgs(signature{
		tag:   "autosort",
		names: []string{"accepted", "default"},
	}, start, arguments)
	if err != nil {
		return nil, err
	}
	return &autosortNode{token: start, collection: name.Val, args: args}, nil
}

func (n *autosortNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	r, perr := requestFrom(ctx, "autosort", n.token)
	if perr != nil {
		return perr
	}

	value, ok := lookup(ctx, n.collection)
	if !ok || value == nil {
		return ctx.Error(fmt.Sprintf("autosort: %q is not in the template context", n.collection), n.token)
	}
	collection, ok := value.(sorting.Orderable)
	if !ok {
		return ctx.Error(fmt.Sprintf("autosort: %q (%T) cannot be ordered", n.collection, value), n.token)
	}

	rawAccepted, perr := n.args.raw(ctx, "accepted")
	if perr != nil {
		return perr
	}
	accepted, err := fieldList(rawAccepted)
	if err != nil {
		return ctx.OrigError(fmt.Errorf("autosort: accepted fields: %w", err), n.token)
	}
	defaultOrdering, perr := n.args.str(ctx, "default")
	if perr != nil {
		return perr
	}

	rt := active()
	sorted, err := sorting.AutoSort(r, collection, accepted, defaultOrdering, rt.sortOptions()...)
	if err != nil {
		rt.logger.Debug("autosort failed",
			zap.String("collection", n.collection),
			zap.Error(err),
		)
		return ctx.OrigError(err, n.token)
	}
	ctx.Private[n.collection] = sorted
	return nil
}

// fieldList accepts a comma separated string or a list of names.
func fieldList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return sorting.SplitFields(v), nil
	case []string:
		return sorting.SplitFieldSet(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field name must be a string, got %T", item)
			}
			out = append(out, name)
		}
		return sorting.SplitFieldSet(out), nil
	default:
		return nil, fmt.Errorf("unsupported value %T", value)
	}
}
