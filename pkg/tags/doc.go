// Package tags registers the page helpers with pongo2 so templates can call
// them with tag syntax:
//
//	{% disqus_dev %}
//	{% disqus_num_replies [identifier] %}
//	{% disqus_show_comments [identifier] %}
//	{% anchor field [title] [fragment] %}
//	{% autosort collection [accepted [default]] %}
//	{% uni_form form [helper] %}
//	{% uni_form_setup %}
//	{{ form|as_uni_form }}
//
// Arguments are pongo2 expressions, written positionally or as key=value.
// Tags that need the current page read the *http.Request stored under the
// "request" context key.
package tags
