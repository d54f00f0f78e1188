package manifest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/burstbuild/internal/env"
)

// declare binds variables, rules and pools from one file. Variables are
// evaluated immediately, in order, so later ones may refer to earlier ones.
func (b *builder) declare(root *fileRoot) error {
	for _, v := range root.Variables {
		t, err := env.ParseTemplate(v.Value)
		if err != nil {
			return rangeError(v.DefRange, err)
		}
		b.root.Set(v.Name, t.EvalIn(b.root))
	}

	for _, r := range root.Rules {
		if _, exists := b.rules[r.Name]; exists {
			return rangeError(r.DefRange, fmt.Errorf("%w: rule '%s'", errDuplicate, r.Name))
		}
		rule, err := translateRule(r)
		if err != nil {
			return err
		}
		b.rules[r.Name] = rule
	}

	for _, p := range root.Pools {
		if _, exists := b.pools[p.Name]; exists {
			return rangeError(p.DefRange, fmt.Errorf("%w: pool '%s'", errDuplicate, p.Name))
		}
		if p.Depth < 0 {
			return rangeError(p.DefRange, fmt.Errorf("pool '%s': invalid depth %d", p.Name, p.Depth))
		}
		b.pools[p.Name] = &env.Pool{Name: p.Name, Depth: p.Depth}
	}
	return nil
}

func translateRule(r *ruleBlock) (*env.Rule, error) {
	rule := env.NewRule(r.Name)
	for _, name := range slices.Sorted(maps.Keys(r.Bindings)) {
		attr := r.Bindings[name]
		if !ruleVars[name] {
			return nil, rangeError(attr.NameRange, fmt.Errorf("rule '%s': unexpected variable '%s'", r.Name, name))
		}
		raw, err := stringValue(attr.Expr)
		if err != nil {
			return nil, err
		}
		t, err := env.ParseTemplate(raw)
		if err != nil {
			return nil, rangeError(attr.Range, err)
		}
		rule.Bind(name, t)
	}
	if _, ok := rule.Binding("command"); !ok {
		return nil, rangeError(r.DefRange, fmt.Errorf("rule '%s': missing 'command'", r.Name))
	}
	return rule, nil
}

// stringValue evaluates expr without variables and converts the result to a
// string. Numbers and bools are accepted and rendered the cty way.
func stringValue(expr hcl.Expression) (string, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	return toString(expr.Range(), v)
}

func toString(rng hcl.Range, v cty.Value) (string, error) {
	if v.IsNull() {
		return "", rangeError(rng, errors.New("value must not be null"))
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", rangeError(rng, fmt.Errorf("value must be a string: %w", err))
	}
	if !sv.IsKnown() {
		return "", rangeError(rng, errors.New("value must be known"))
	}
	return sv.AsString(), nil
}

// stringMap evaluates an object or map expression into string values. A
// missing optional attribute evaluates to null and yields an empty map.
func stringMap(expr hcl.Expression) (map[string]string, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, rangeError(expr.Range(), fmt.Errorf("expected an object of variables, got %s", ty.FriendlyName()))
	}
	out := make(map[string]string, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		s, err := toString(expr.Range(), ev)
		if err != nil {
			return nil, fmt.Errorf("variable '%s': %w", k.AsString(), err)
		}
		out[k.AsString()] = s
	}
	return out, nil
}
