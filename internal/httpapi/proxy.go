package httpapi

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
)

// CMSProxy forwards content API requests to the hosted CMS, injecting the
// server-side API key so it never reaches the browser.
type CMSProxy struct {
	upstream *url.URL
	token    string
	http     *http.Client
	logger   logging.Logger
}

// NewCMSProxy builds a proxy for the given upstream base URL.
func NewCMSProxy(upstream, token string, logger logging.Logger) (*CMSProxy, error) {
	parsed, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &CMSProxy{
		upstream: parsed,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

func (p *CMSProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := *p.upstream
	target.Path = strings.TrimSuffix(target.Path, "/") + "/" + r.PathValue("path")
	target.RawQuery = r.URL.RawQuery

	var body io.Reader
	if r.Method == http.MethodPost {
		body = r.Body
	}
	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), body)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "proxy_error", Message: err.Error()})
		return
	}
	req.Header.Set("X-API-KEY", p.token)
	if r.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error("cms proxy upstream failed", "path", r.PathValue("path"), "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "proxy_error", Message: err.Error()})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
