package graph

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/burstbuild/internal/env"
	"github.com/specialistvlad/burstbuild/internal/murmur"
)

// newCompileEdge builds "cc -c $in -o $out" from src to obj.
func newCompileEdge(t *testing.T, g *Graph, rule *env.Rule, src, obj string) *Edge {
	t.Helper()
	e := g.NewEdge(nil)
	e.Rule = rule
	require.NoError(t, e.AddOutputs([]*Node{g.Intern(obj)}, nil))
	e.AddInputs([]*Node{g.Intern(src)}, nil, nil)
	return e
}

func ccRule() *env.Rule {
	r := env.NewRule("cc")
	r.Bind("command", env.MustParseTemplate("cc -c $in -o $out"))
	return r
}

func TestFingerprint_KnownValue(t *testing.T) {
	t.Parallel()

	g := New(nil)
	e := newCompileEdge(t, g, ccRule(), "foo.c", "foo.o")

	got, err := e.Fingerprint()

	require.NoError(t, err)
	assert.Equal(t, uint64(0x00eb2d9e30d30266), got)
	assert.True(t, e.HashComputed())
	assert.Equal(t, FlagHash, e.Flags()&FlagHash)
}

func TestFingerprint_WithRspfileContent(t *testing.T) {
	t.Parallel()

	rule := ccRule()
	rule.Bind("rspfile_content", env.MustParseTemplate("$in bar.c"))
	e := newCompileEdge(t, New(nil), rule, "foo.c", "foo.o")

	got, err := e.Fingerprint()

	require.NoError(t, err)
	assert.Equal(t, murmur.Sum64String("cc -c foo.c -o foo.o;rspfile=foo.c bar.c"), got)
	assert.Equal(t, uint64(0xb940b1d8f9d80550), got)
}

func TestFingerprint_EmptyRspfileContentIsIgnored(t *testing.T) {
	t.Parallel()

	rule := ccRule()
	rule.Bind("rspfile_content", env.Literal(""))
	e := newCompileEdge(t, New(nil), rule, "foo.c", "foo.o")

	got, err := e.Fingerprint()

	require.NoError(t, err)
	assert.Equal(t, uint64(0x00eb2d9e30d30266), got)
}

func TestFingerprint_EqualCommandsEqualDigests(t *testing.T) {
	t.Parallel()

	g := New(nil)
	a := g.NewEdge(nil)
	a.Rule = env.NewRule("a")
	a.Env().Set("command", "touch out")
	b := g.NewEdge(nil)
	b.Rule = env.NewRule("b")
	b.Env().Set("command", "touch out")
	c := g.NewEdge(nil)
	c.Rule = env.NewRule("c")
	c.Env().Set("command", "touch oUt")

	ha, err := a.Fingerprint()
	require.NoError(t, err)
	hb, err := b.Fingerprint()
	require.NoError(t, err)
	hc, err := c.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}

func TestFingerprint_ComputedOnce(t *testing.T) {
	t.Parallel()

	g := New(nil)
	e := g.NewEdge(nil)
	e.Rule = env.NewRule("touch")
	e.Env().Set("command", "touch a")

	first, err := e.Fingerprint()
	require.NoError(t, err)
	e.Env().Set("command", "touch b")
	second, err := e.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, first, second, "later binding changes are not observed")
}

func TestFingerprint_MissingCommand(t *testing.T) {
	t.Parallel()

	g := New(nil)
	e := g.NewEdge(nil)
	e.Rule = env.NewRule("nocmd")

	_, err := e.Fingerprint()

	require.ErrorIs(t, err, ErrMissingCommand)
	var missing *MissingCommandError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "nocmd", missing.Rule)
	assert.Equal(t, "rule 'nocmd' has no command", err.Error())
	assert.True(t, e.HashComputed())

	_, again := e.Fingerprint()
	assert.Same(t, err, again)
}

func TestFingerprint_MissingRule(t *testing.T) {
	t.Parallel()

	e := New(nil).NewEdge(nil)

	_, err := e.Fingerprint()

	require.ErrorIs(t, err, ErrMissingCommand)
	assert.Equal(t, "rule '<none>' has no command", err.Error())
}

// Run with -race: readers of the flag bits must not race the memoized write.
func TestFingerprint_ConcurrentWithHashComputed(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := New(nil)
	e := newCompileEdge(t, g, ccRule(), "foo.c", "foo.o")
	start := make(chan struct{})
	var wg sync.WaitGroup
	hashes := make([]uint64, 4)

	// --- Act ---
	for i := range hashes {
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			hashes[i], _ = e.Fingerprint()
		}()
		go func() {
			defer wg.Done()
			<-start
			for range 100 {
				_ = e.HashComputed()
				_ = e.Flags()
			}
		}()
	}
	close(start)
	wg.Wait()

	// --- Assert ---
	assert.True(t, e.HashComputed())
	for _, h := range hashes {
		assert.Equal(t, uint64(0x00eb2d9e30d30266), h)
	}
}

func TestFingerprint_CommandFromParentScope(t *testing.T) {
	t.Parallel()

	root := env.New(nil)
	root.Set("command", "from-root")
	g := New(root)
	e := g.NewEdge(nil)
	e.Rule = env.NewRule("bare")

	got, err := e.Fingerprint()

	require.NoError(t, err)
	assert.Equal(t, murmur.Sum64String("from-root"), got)
}

func TestLookup_Precedence(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := env.New(nil)
	root.Set("cflags", "-O2")
	root.Set("cc", "gcc")
	g := New(root)

	rule := env.NewRule("cc")
	rule.Bind("command", env.MustParseTemplate("$cc $cflags -c $in -o $out"))
	rule.Bind("cc", env.Literal("clang"))
	e := newCompileEdge(t, g, rule, "my file.c", "out.o")
	e.AddInputs(nil, []*Node{g.Intern("hidden.h")}, nil)
	e.Env().Set("cflags", "-O0")

	// --- Act ---
	escaped, err := e.Command()
	require.NoError(t, err)
	raw, ok, err := e.Lookup("command", false)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "clang -O0 -c 'my file.c' -o out.o", escaped)
	assert.Equal(t, "clang -O0 -c my file.c -o out.o", raw)

	v, ok, err := e.Lookup("cflags", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "-O0", v)

	_, ok, err = e.Lookup("undefined", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookup_InNewline(t *testing.T) {
	t.Parallel()

	g := New(nil)
	e := g.NewEdge(nil)
	e.Rule = env.NewRule("link")
	e.AddInputs(internAll(g, "a.o", "b.o"), internAll(g, "c.o"), nil)

	v, ok, err := e.Lookup("in_newline", true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a.o\nb.o", v)
}

func TestLookup_Cycle(t *testing.T) {
	t.Parallel()

	rule := env.NewRule("loop")
	rule.Bind("command", env.MustParseTemplate("$a"))
	rule.Bind("a", env.MustParseTemplate("x $b"))
	rule.Bind("b", env.MustParseTemplate("$a"))
	e := New(nil).NewEdge(nil)
	e.Rule = rule

	_, err := e.Fingerprint()

	require.ErrorIs(t, err, ErrVarCycle)
	assert.Contains(t, err.Error(), "'a'")
}
