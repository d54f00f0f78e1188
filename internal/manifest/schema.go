package manifest

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every manifest file.
type fileRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Rules     []*ruleBlock     `hcl:"rule,block"`
	Pools     []*poolBlock     `hcl:"pool,block"`
	Builds    []*buildBlock    `hcl:"build,block"`
}

type variableBlock struct {
	Name     string    `hcl:"name,label"`
	Value    string    `hcl:"value"`
	DefRange hcl.Range `hcl:",def_range"`
}

// ruleBlock keeps its attributes raw: every attribute is a binding.
type ruleBlock struct {
	Name     string         `hcl:"name,label"`
	Bindings hcl.Attributes `hcl:",remain"`
	DefRange hcl.Range      `hcl:",def_range"`
}

type poolBlock struct {
	Name     string    `hcl:"name,label"`
	Depth    int       `hcl:"depth"`
	DefRange hcl.Range `hcl:",def_range"`
}

type buildBlock struct {
	Rule            string         `hcl:"rule"`
	Outputs         []string       `hcl:"outputs"`
	ImplicitOutputs []string       `hcl:"implicit_outputs,optional"`
	Inputs          []string       `hcl:"inputs,optional"`
	Implicit        []string       `hcl:"implicit,optional"`
	OrderOnly       []string       `hcl:"order_only,optional"`
	Discovered      []string       `hcl:"discovered,optional"`
	Pool            string         `hcl:"pool,optional"`
	Vars            hcl.Expression `hcl:"vars,optional"`
	DefRange        hcl.Range      `hcl:",def_range"`
}

// ruleVars are the bindings a rule may declare.
var ruleVars = map[string]bool{
	"command":          true,
	"depfile":          true,
	"dyndep":           true,
	"deps":             true,
	"msvc_deps_prefix": true,
	"description":      true,
	"generator":        true,
	"pool":             true,
	"restat":           true,
	"rspfile":          true,
	"rspfile_content":  true,
}
