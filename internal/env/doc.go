// Package env provides the variable scopes, rule definitions and pool
// references that build edges are evaluated against.
//
// Scopes form a chain: a lookup that misses in one scope falls back to its
// parent. Values bound into scopes are already evaluated strings; rule
// bindings stay as Templates because they can only be expanded once an edge
// supplies $in and $out.
package env
