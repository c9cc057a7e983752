// Package hcl loads .hcl plan files into the agnostic plan model.
//
// A plan file contains `target` blocks and optional `locals` blocks:
//
//	locals {
//	  build_dir = "out"
//	}
//
//	target "compile" {
//	  run = "make -C ${local.build_dir}"
//	}
//
//	target "test" {
//	  run        = "make check"
//	  depends_on = ["compile"]
//	}
//
// Local values are evaluated per file and exposed to target expressions as
// local.<name>. The loader validates the aggregate plan before handing it
// onward: duplicate names, dangling or self-referential depends_on entries,
// and dependency cycles are all load-time errors. The engine itself assumes
// an acyclic graph, so the cycle check lives here, at the trust boundary with
// user input.
package hcl
