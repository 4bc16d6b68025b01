// Package comments renders the Disqus comment widget snippets: the developer
// mode flag, the reply counter loader and the comment thread embed.
package comments

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

// ErrMissingShortname is returned when no site shortname is configured.
var ErrMissingShortname = errors.New("comments: disqus shortname is not configured")

// Settings identifies the site with the comment service.
type Settings struct {
	Shortname string
	Debug     bool
	// TrustForwardedProto lets the X-Forwarded-Proto header pick the page
	// URL scheme. Only enable it behind a proxy that sets the header.
	TrustForwardedProto bool
}

const devScript = `<script type="text/javascript">
    var disqus_developer = 1;
</script>`

// DevScript returns the developer mode snippet when Debug is set, so threads
// load on local servers. It returns an empty string otherwise.
func DevScript(settings Settings) string {
	if !settings.Debug {
		return ""
	}
	return devScript
}

// NumReplies returns the script that loads reply counts for links on the page
// at pageURL. identifier is optional.
func NumReplies(settings Settings, pageURL, identifier string) (string, error) {
	shortname, err := shortnameOf(settings)
	if err != nil {
		return "", err
	}

	lines := []string{`<script type="text/javascript">`}
	lines = append(lines, identifierLines(identifier)...)
	lines = append(lines, fmt.Sprintf(`
    var disqus_url = '%[1]s';
    var disqus_shortname = '%[2]s';
    (function () {
        var s = document.createElement('script'); s.async = true;
        s.src = 'http://disqus.com/forums/%[2]s/count.js';
        (document.getElementsByTagName('HEAD')[0] || document.getElementsByTagName('BODY')[0]).appendChild(s);
    }());
</script>`, jsString(pageURL), shortname))
	return strings.Join(lines, "\n"), nil
}

// ShowComments returns the comment thread container and embed script for the
// page at pageURL. identifier is optional.
func ShowComments(settings Settings, pageURL, identifier string) (string, error) {
	shortname, err := shortnameOf(settings)
	if err != nil {
		return "", err
	}

	lines := []string{`<div id="disqus_thread"></div>
<script type="text/javascript">
    /* <![CDATA[ */`}
	lines = append(lines, identifierLines(identifier)...)
	lines = append(lines, fmt.Sprintf(`
    var disqus_url = '%[1]s';
    var disqus_shortname = '%[2]s';
    var disqus_domain = 'disqus.com';
    (function() {
        var dsq = document.createElement('script'); dsq.type = 'text/javascript';
        dsq.async = true;
        dsq.src = 'http://' + disqus_shortname + '.' + disqus_domain + '/embed.js';
        (document.getElementsByTagName('head')[0] || document.getElementsByTagName('body')[0]).appendChild(dsq);
    })();
    /* ]]> */
</script>
<noscript>Please enable JavaScript to view the <a href="http://disqus.com/?ref_noscript=">comments powered by Disqus.</a></noscript>
<p><a href="http://disqus.com" class="dsq-brlink">blog comments powered by <span class="logo-disqus">Disqus</span></a></p>`,
		jsString(pageURL), shortname))
	return strings.Join(lines, "\n"), nil
}

// AbsoluteURL rebuilds the absolute URL of r. The scheme follows TLS, or the
// X-Forwarded-Proto header when trustForwardedProto is set.
func AbsoluteURL(r *http.Request, trustForwardedProto bool) string {
	if r == nil || r.URL == nil {
		return ""
	}
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); trustForwardedProto && forwarded != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	return scheme + "://" + host + r.URL.RequestURI()
}

func shortnameOf(settings Settings) (string, error) {
	shortname := strings.TrimSpace(settings.Shortname)
	if shortname == "" {
		return "", ErrMissingShortname
	}
	return shortname, nil
}

func identifierLines(identifier string) []string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}
	return []string{fmt.Sprintf("    var disqus_identifier = '%s';", jsString(identifier))}
}

func jsString(value string) string {
	return template.JSEscapeString(value)
}
