package tags

import (
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pagetags/pkg/comments"
)

type disqusDevNode struct{}

func parseDisqusDev(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	if _, err := parseArgs(signature{tag: "disqus_dev"}, start, arguments); err != nil {
		return nil, err
	}
	return disqusDevNode{}, nil
}

func (disqusDevNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	script := comments.DevScript(active().commentSettings())
	if script == "" {
		return nil
	}
	if _, err := writer.WriteString(script); err != nil {
		return ctx.OrigError(err, nil)
	}
	return nil
}

type disqusEmbed func(settings comments.Settings, pageURL, identifier string) (string, error)

type disqusNode struct {
	tag   string
	token *pongo2.Token
	args  boundArgs
	embed disqusEmbed
}

var disqusSignature = []string{"identifier"}

func parseDisqusNumReplies(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	return parseDisqus("disqus_num_replies", comments.NumReplies, start, arguments)
}

func parseDisqusShowComments(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	return parseDisqus("disqus_show_comments", comments.ShowComments, start, arguments)
}

func parseDisqus(tag string, embed disqusEmbed, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	args, err := parseArgs(signature{tag: tag, names: disqusSignature}, start, arguments)
	if err != nil {
		return nil, err
	}
	return &disqusNode{tag: tag, token: start, args: args, embed: embed}, nil
}

func (n *disqusNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	r, perr := requestFrom(ctx, n.tag, n.token)
	if perr != nil {
		return perr
	}
	identifier, perr := n.args.str(ctx, "identifier")
	if perr != nil {
		return perr
	}

	settings := active().commentSettings()
	out, err := n.embed(settings, comments.AbsoluteURL(r, settings.TrustForwardedProto), identifier)
	if err != nil {
		return ctx.OrigError(err, n.token)
	}
	if _, err := writer.WriteString(out); err != nil {
		return ctx.OrigError(err, n.token)
	}
	return nil
}
