package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/burstbuild/internal/ctxlog"
	"github.com/specialistvlad/burstbuild/internal/env"
	"github.com/specialistvlad/burstbuild/internal/fsutil"
	"github.com/specialistvlad/burstbuild/internal/graph"
)

// Loader reads HCL manifests into a fresh graph generation.
type Loader struct{}

// NewLoader creates a new manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// source is one manifest file, already read.
type source struct {
	name string
	data []byte
}

// Load reads every .hcl file under paths (files or directories) and builds a
// new graph from them. Declarations from all files share one namespace.
func (l *Loader) Load(ctx context.Context, paths ...string) (*graph.Graph, error) {
	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl manifests found in %v", paths)
	}
	sources := make([]source, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", f, err)
		}
		sources = append(sources, source{name: f, data: data})
	}
	return l.load(ctx, sources)
}

// LoadSource builds a graph from a single in-memory manifest.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*graph.Graph, error) {
	return l.load(ctx, []source{{name: filename, data: src}})
}

func (l *Loader) load(ctx context.Context, sources []source) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "file_count", len(sources))

	parser := hclparse.NewParser()
	roots := make([]*fileRoot, 0, len(sources))
	for _, src := range sources {
		file, diags := parser.ParseHCL(src.data, src.name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", src.name, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", src.name, diags)
		}
		roots = append(roots, &root)
	}

	b := newBuilder()
	for _, root := range roots {
		if err := b.declare(root); err != nil {
			return nil, err
		}
	}
	for _, root := range roots {
		for _, blk := range root.Builds {
			if err := b.build(blk); err != nil {
				return nil, err
			}
		}
	}
	b.wireDiscovered()
	phonies := b.g.EnsureProducers()

	logger.Debug("Manifest loaded.",
		"rules", len(b.rules),
		"pools", len(b.pools),
		"edges", len(b.g.Edges()),
		"nodes", b.g.Len(),
		"sources", phonies,
	)
	return b.g, nil
}

// rangeError prefixes err with a source position.
func rangeError(rng hcl.Range, err error) error {
	return fmt.Errorf("%s: %w", rng.String(), err)
}

var (
	errUnknownRule = errors.New("unknown rule")
	errUnknownPool = errors.New("unknown pool")
	errDuplicate   = errors.New("duplicate declaration")
)

// builder holds declarations while build blocks are wired.
type builder struct {
	g     *graph.Graph
	root  *env.Env
	rules map[string]*env.Rule
	pools map[string]*env.Pool

	discovered []pendingDeps
}

func newBuilder() *builder {
	root := env.New(nil)
	return &builder{
		g:     graph.New(root),
		root:  root,
		rules: map[string]*env.Rule{env.PhonyName: env.Phony},
		pools: map[string]*env.Pool{env.ConsolePool.Name: env.ConsolePool},
	}
}
