// Package render orchestrates the full pipeline of SPEC_FULL.md: decode,
// build, measure, place, paginate, and emit. It is the single entry point
// callers use — generalized from the teacher's layout.Engine functional-
// options constructor (spec ambient stack §A).
package render

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/wudi/docrender/draw"
	"github.com/wudi/docrender/fonts"
	"github.com/wudi/docrender/layout"
	"github.com/wudi/docrender/node"
	"github.com/wudi/docrender/observability"
	"github.com/wudi/docrender/paginate"
	"github.com/wudi/docrender/rendererr"
	"github.com/wudi/docrender/resolve"
	"github.com/wudi/docrender/style"
)

// Margins is an outer page margin applied in addition to whatever padding
// the input document declares on its page node.
type Margins struct {
	Top, Right, Bottom, Left float64
}

type config struct {
	pageWidth, pageHeight float64
	margins               Margins
	debugBoxes            bool
	logger                observability.Logger
	resolver              resolve.Resolver
}

// Option configures a Renderer.
type Option func(*config)

// WithPageSize overrides the default page size (spec §4.3: A4 otherwise)
// used when the input's page node doesn't declare its own width/height.
func WithPageSize(w, h float64) Option {
	return func(c *config) { c.pageWidth, c.pageHeight = w, h }
}

// WithMargins adds a fixed outer margin around every page's content,
// layered on top of the page node's own padding.
func WithMargins(m Margins) Option {
	return func(c *config) { c.margins = m }
}

// WithDebugBoxes draws a hairline outline around every placed box,
// matching the teacher's debug-overlay convention for visualizing layout.
func WithDebugBoxes(enabled bool) Option {
	return func(c *config) { c.debugBoxes = enabled }
}

// WithLogger sets the structured logger warnings and phase timings are
// reported through. Defaults to observability.NopLogger.
func WithLogger(l observability.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithResolver overrides the default http/data-URI/file resolver.
func WithResolver(r resolve.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// Renderer runs the full layout-to-draw-primitives pipeline against a Sink.
type Renderer struct {
	cfg config
}

// NewRenderer builds a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	cfg := config{
		pageWidth:  layout.DefaultPageWidth,
		pageHeight: layout.DefaultPageHeight,
		logger:     observability.NopLogger{},
		resolver:   resolve.NewDefaultResolver(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

// Result is the outcome of one render: a correlation id for log lookups,
// the page count produced, and any accumulated non-fatal warnings.
type Result struct {
	RequestID  string
	PageCount  int
	Warnings   error
}

// Render decodes jsonInput, lays it out, paginates it, and emits draw
// primitives to sink. A malformed-input or internal-invariant error aborts
// immediately (spec §7); resource/degenerate-layout/pagination-overflow
// issues are collected as warnings and returned alongside a successful
// Result.
func (r *Renderer) Render(ctx context.Context, jsonInput []byte, sink draw.Sink) (*Result, error) {
	requestID := uuid.NewString()
	log := r.cfg.logger.With(observability.String("requestId", requestID))

	root, err := node.Decode(jsonInput)
	if err != nil {
		log.Error("decode failed", observability.Error("err", err))
		return nil, err
	}

	box, err := layout.Build(root)
	if err != nil {
		log.Error("build failed", observability.Error("err", err))
		return nil, err
	}
	applyPageDefaults(box, root.Box, r.cfg)

	var warnings error
	warn := func(w rendererr.Warning) {
		log.Warn(w.String())
		warnings = multierr.Append(warnings, w.Err())
	}

	resources := resolveResources(ctx, root, r.cfg.resolver, warn)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mc := &layout.MeasureContext{Metrics: fonts.Helvetica, Resources: resources, Warn: warn}
	if err := layout.Measure(ctx, mc, box); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout.Place(box, fonts.Helvetica, warn)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages := paginate.Paginate(box, warn)

	draw.Emit(pages, sink, resources)
	if r.cfg.debugBoxes {
		draw.EmitDebugOutlines(pages, sink)
	}

	log.Info("render complete", observability.Int("pages", len(pages)))
	return &Result{RequestID: requestID, PageCount: len(pages), Warnings: warnings}, nil
}

// applyPageDefaults consults the page node's own declared style, not the
// built box: layout.Build has already filled an undeclared size with A4.
func applyPageDefaults(box *layout.Box, spec *style.BoxSpec, cfg config) {
	if spec == nil || spec.Width == nil {
		box.Style.Width = style.Pt(cfg.pageWidth)
	}
	if spec == nil || spec.Height == nil {
		box.Style.Height = style.Pt(cfg.pageHeight)
	}
	box.Style.Padding.Top = addMargin(box.Style.Padding.Top, cfg.margins.Top)
	box.Style.Padding.Right = addMargin(box.Style.Padding.Right, cfg.margins.Right)
	box.Style.Padding.Bottom = addMargin(box.Style.Padding.Bottom, cfg.margins.Bottom)
	box.Style.Padding.Left = addMargin(box.Style.Padding.Left, cfg.margins.Left)
}

// addMargin layers a fixed outer margin on top of an already-resolved
// padding edge. A percentage edge has no fixed base to add to at this
// point in the pipeline, so the margin becomes the edge's sole fixed
// contribution.
func addMargin(edge style.Length, margin float64) style.Length {
	if margin == 0 {
		return edge
	}
	base := 0.0
	if edge.Unit == style.LengthPoint {
		base = edge.Value
	}
	return style.Pt(base + margin)
}

func resolveResources(ctx context.Context, root *node.Node, resolver resolve.Resolver, warn func(rendererr.Warning)) map[string]layout.ResourceResult {
	cache := resolve.NewCache(resolver)
	out := make(map[string]layout.ResourceResult)
	var walk func(n *node.Node)
	walk = func(n *node.Node) {
		if n.Src != "" {
			if _, ok := out[n.Src]; !ok {
				res, err := cache.Resolve(ctx, n.Src)
				out[n.Src] = layout.ResourceResult{Resource: res, Err: err}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
