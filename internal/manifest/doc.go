// Package manifest loads build manifests written in HCL and turns them into a
// graph.Graph. It plays the part of the ninja parser: it declares variables,
// rules and pools, then drives the graph's construction API for every build
// block.
//
// A manifest looks like this:
//
//	variable "cflags" {
//	  value = "-O2 -Wall"
//	}
//
//	rule "cc" {
//	  command     = "cc $cflags -c $in -o $out"
//	  description = "CC $out"
//	}
//
//	pool "link" {
//	  depth = 1
//	}
//
//	build {
//	  rule       = "cc"
//	  outputs    = ["obj/main.o"]
//	  inputs     = ["src/main.c"]
//	  implicit   = ["src/config.h"]
//	  order_only = ["obj/.dir"]
//	  vars       = { cflags = "$cflags -g" }
//	}
//
// A build block may also list discovered dependencies, the ones a depfile
// would report. They are wired after every build block is loaded and end up
// among the edge's implicit inputs. Any file nothing produces gets a phony
// producer once loading is done.
//
// Strings use ninja's $var syntax. HCL reserves "${", so a braced ninja
// reference has to be written "$${name}".
package manifest
