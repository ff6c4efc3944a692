package sync

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/google/go-github/v36/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	userAgent               = "bitbucket_issues_to_github/1.0.0"
	mediaTypeInertiaPreview = "application/vnd.github.inertia-preview+json"
)

// ClientOptions how the GitHub client is built.
type ClientOptions struct {
	// Token the access token, requests are anonymous if it is empty.
	Token string
	// APIURL overrides the api root, e.g. for GitHub Enterprise.
	APIURL string
	// Debug dumps every request and response.
	Debug bool
}

// NewGithubClient builds a go-github client which carries the preview media type on every request.
func NewGithubClient(ctx context.Context, o ClientOptions, log *logrus.Entry) (*github.Client, error) {
	hc := &http.Client{
		Transport: &transport{
			base:  http.DefaultTransport,
			debug: o.Debug,
			log:   log,
		},
	}

	if o.Token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.Token}))
	}

	c := github.NewClient(hc)
	c.UserAgent = userAgent

	if o.APIURL != "" {
		u, err := url.Parse(o.APIURL)
		if err != nil {
			return nil, err
		}

		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}

		c.BaseURL = u
	}

	return c, nil
}

type transport struct {
	base  http.RoundTripper
	debug bool
	log   *logrus.Entry
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if accept := r.Header.Get("Accept"); !strings.Contains(accept, mediaTypeInertiaPreview) {
		if accept == "" {
			r.Header.Set("Accept", mediaTypeInertiaPreview)
		} else {
			r.Header.Set("Accept", accept+", "+mediaTypeInertiaPreview)
		}
	}

	if t.debug {
		t.dumpRequest(r)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if t.debug {
		if b, err := httputil.DumpResponse(resp, true); err == nil {
			t.log.Debug(string(b))
		}
	}

	return resp, nil
}

func (t *transport) dumpRequest(req *http.Request) {
	r := req.Clone(req.Context())
	if r.Header.Get("Authorization") != "" {
		r.Header.Set("Authorization", "<redacted>")
	}

	r.Body = nil
	if req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			r.Body = body
		}
	}

	if r.Body == nil {
		r.ContentLength = 0
	}

	if b, err := httputil.DumpRequestOut(r, true); err == nil {
		t.log.Debug(string(b))
	}
}
