package tags

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// signature names a tag's parameters in positional order. The first
// required names must be present.
type signature struct {
	tag      string
	names    []string
	required int
}

// boundArgs maps parameter names to their unevaluated expressions.
type boundArgs map[string]pongo2.IEvaluator

// parseArgs reads every remaining token as either a positional expression or
// a name=expression keyword argument.
func parseArgs(sig signature, start *pongo2.Token, arguments *pongo2.Parser) (boundArgs, *pongo2.Error) {
	bound := make(boundArgs, len(sig.names))
	position := 0

	for arguments.Remaining() > 0 {
		if key := keyword(arguments); key != nil {
			name := key.Val
			if !sig.accepts(name) {
				return nil, arguments.Error(fmt.Sprintf("%s: unknown argument %q", sig.tag, name), key)
			}
			if _, dup := bound[name]; dup {
				return nil, arguments.Error(fmt.Sprintf("%s: argument %q given twice", sig.tag, name), key)
			}
			expr, err := arguments.ParseExpression()
			if err != nil {
				return nil, err
			}
			bound[name] = expr
			continue
		}

		if position >= len(sig.names) {
			return nil, arguments.Error(fmt.Sprintf("%s: accepts at most %d argument(s)", sig.tag, len(sig.names)), nil)
		}
		expr, err := arguments.ParseExpression()
		if err != nil {
			return nil, err
		}
		name := sig.names[position]
		if _, dup := bound[name]; dup {
			return nil, arguments.Error(fmt.Sprintf("%s: argument %q given twice", sig.tag, name), nil)
		}
		bound[name] = expr
		position++
	}

	for _, name := range sig.names[:sig.required] {
		if _, ok := bound[name]; !ok {
			return nil, arguments.Error(fmt.Sprintf("%s: missing required argument %q", sig.tag, name), start)
		}
	}
	return bound, nil
}

// keyword consumes "name =" when the next tokens spell a keyword argument.
func keyword(arguments *pongo2.Parser) *pongo2.Token {
	if arguments.PeekTypeN(0, pongo2.TokenIdentifier) == nil || arguments.PeekN(1, pongo2.TokenSymbol, "=") == nil {
		return nil
	}
	key := arguments.MatchType(pongo2.TokenIdentifier)
	arguments.Match(pongo2.TokenSymbol, "=")
	return key
}

func (s signature) accepts(name string) bool {
	for _, candidate := range s.names {
		if candidate == name {
			return true
		}
	}
	return false
}

func (b boundArgs) value(ctx *pongo2.ExecutionContext, name string) (*pongo2.Value, *pongo2.Error) {
	expr, ok := b[name]
	if !ok {
		return nil, nil
	}
	return expr.Evaluate(ctx)
}

func (b boundArgs) str(ctx *pongo2.ExecutionContext, name string) (string, *pongo2.Error) {
	value, err := b.value(ctx, name)
	if err != nil || value == nil || value.IsNil() {
		return "", err
	}
	return strings.TrimSpace(value.String()), nil
}

func (b boundArgs) raw(ctx *pongo2.ExecutionContext, name string) (any, *pongo2.Error) {
	value, err := b.value(ctx, name)
	if err != nil || value == nil || value.IsNil() {
		return nil, err
	}
	return value.Interface(), nil
}

// lookup resolves a context variable, private scope first.
func lookup(ctx *pongo2.ExecutionContext, name string) (any, bool) {
	if value, ok := ctx.Private[name]; ok {
		return value, true
	}
	value, ok := ctx.Public[name]
	return value, ok
}

func requestFrom(ctx *pongo2.ExecutionContext, tag string, token *pongo2.Token) (*http.Request, *pongo2.Error) {
	value, _ := lookup(ctx, RequestKey)
	r, ok := value.(*http.Request)
	if !ok || r == nil {
		return nil, ctx.Error(fmt.Sprintf("%s: %q is not an *http.Request in the template context", tag, RequestKey), token)
	}
	return r, nil
}
