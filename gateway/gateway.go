// Package gateway is the single public entry point. It authenticates callers
// on protected routes and forwards requests to the owning service with the
// verified identity in X-User-Id / X-Username.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"go-ledger-api/common"
	"go-ledger-api/config"
	"go-ledger-api/logger"
	"go-ledger-api/middleware"

	"github.com/sirupsen/logrus"
)

type Route struct {
	Prefix    string
	Upstream  *url.URL
	Protected bool
	proxy     *httputil.ReverseProxy
}

func (rt *Route) matches(path string) bool {
	return path == rt.Prefix || strings.HasPrefix(path, strings.TrimSuffix(rt.Prefix, "/")+"/")
}

type Gateway struct {
	routes   []*Route
	verifier middleware.TokenVerifier
}

// New builds a gateway from route config. Longer prefixes win.
func New(routes []config.RouteConfig, verifier middleware.TokenVerifier) (*Gateway, error) {
	g := &Gateway{verifier: verifier}
	for _, rc := range routes {
		if rc.Prefix == "" || !strings.HasPrefix(rc.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must start with /", rc.Prefix)
		}
		target, err := url.Parse(rc.Upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("route %s: invalid upstream %q", rc.Prefix, rc.Upstream)
		}
		g.routes = append(g.routes, &Route{
			Prefix:    rc.Prefix,
			Upstream:  target,
			Protected: rc.Protected,
			proxy:     newProxy(target),
		})
	}
	sort.SliceStable(g.routes, func(i, j int) bool {
		return len(g.routes[i].Prefix) > len(g.routes[j].Prefix)
	})
	return g, nil
}

func (g *Gateway) match(path string) *Route {
	for _, rt := range g.routes {
		if rt.matches(path) {
			return rt
		}
	}
	return nil
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Identity headers only ever come from the gateway itself.
	middleware.StripIdentityHeaders(r.Header)

	route := g.match(r.URL.Path)
	if route == nil {
		common.NewNotFoundError("No route for "+r.URL.Path, nil).Send(w)
		return
	}

	if route.Protected {
		id, err := middleware.Authenticate(r, g.verifier)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"reason": err.Error(),
			}).Info("Gateway rejected unauthenticated request")
			middleware.Unauthorized(w, err)
			return
		}
		r = r.WithContext(middleware.WithIdentity(r.Context(), id))
	}

	route.proxy.ServeHTTP(w, r)
}

func newProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			middleware.StripIdentityHeaders(pr.Out.Header)
			if id, ok := middleware.IdentityFromContext(pr.In.Context()); ok {
				middleware.SetIdentityHeaders(pr.Out.Header, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Log.WithFields(logrus.Fields{
				"upstream":   target.String(),
				"path":       r.URL.Path,
				"request_id": middleware.RequestIDFromContext(r.Context()),
			}).WithError(err).Error("Upstream request failed")
			common.NewAppError(http.StatusBadGateway, "Upstream service unavailable", nil).Send(w)
		},
	}
}
