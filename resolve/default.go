package resolve

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultResolver handles http(s) URLs, data URIs, and file paths — the
// same three source kinds dispatched in
// _examples/wudi-pdfkit/layout/html.go's renderHTMLImage, generalized to
// svg content and wrapped in a context-aware signature.
type DefaultResolver struct {
	HTTPClient *http.Client
}

// NewDefaultResolver builds a resolver using http.DefaultClient, which sets
// no timeout of its own; an http(s) fetch is bounded only by ctx.
func NewDefaultResolver() *DefaultResolver {
	return &DefaultResolver{HTTPClient: http.DefaultClient}
}

func (r *DefaultResolver) Resolve(ctx context.Context, src string) (Resource, error) {
	data, err := r.fetch(ctx, src)
	if err != nil {
		return Resource{}, err
	}
	if looksLikeSVG(data) {
		w, h := svgDimensions(data)
		return Resource{Bytes: data, Kind: KindSvg, NaturalWidth: w, NaturalHeight: h}, nil
	}
	cfg, _, err := image.DecodeConfig(strings.NewReader(string(data)))
	if err != nil {
		return Resource{}, fmt.Errorf("decode image config for %s: %w", src, err)
	}
	return Resource{
		Bytes:         data,
		Kind:          KindImage,
		NaturalWidth:  float64(cfg.Width),
		NaturalHeight: float64(cfg.Height),
	}, nil
}

func (r *DefaultResolver) fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := r.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: HTTP %d", src, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
}

func decodeDataURI(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	header, payload := src[:comma], src[comma+1:]
	if strings.Contains(header, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	return []byte(payload), nil
}

func looksLikeSVG(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	head := trimmed[:min(len(trimmed), 256)]
	return strings.HasPrefix(trimmed, "<svg") || strings.Contains(head, "<svg")
}
