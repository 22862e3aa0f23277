// Package pkg provides the libraries behind perfectmaze.
//
// # Overview
//
// Perfectmaze carves perfect mazes, where every pair of free cells is joined
// by exactly one path, around a reserved pattern such as "42". The pkg
// directory is organized into three areas:
//
//  1. [core] - Domain logic (grid, pattern mask, backtracker, codec, renderers)
//  2. Infrastructure - [cache], [store], [config], [observability]
//  3. [pipeline] - Orchestration (validate → generate → render), served over
//     HTTP by [server]
//
// # Architecture
//
// The typical data flow:
//
//	Options (flags, config file, API request)
//	         ↓
//	    [core/grid] + [core/pattern] (walled grid, reserved cells sealed)
//	         ↓
//	    [core/backtrack] (randomized depth-first carve)
//	         ↓
//	    [maze] document (hex rows via [core/codec])
//	         ↓
//	    text / hex / json / dot / svg / png / pdf
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/perfectmaze/pkg/core/backtrack"
//	    "github.com/matzehuels/perfectmaze/pkg/core/grid"
//	    "github.com/matzehuels/perfectmaze/pkg/core/pattern"
//	    "github.com/matzehuels/perfectmaze/pkg/core/render"
//	)
//
//	g, _ := grid.New(20, 10)
//	reserved := pattern.Compute(20, 10, pattern.Glyph42(), 7, 5)
//	pattern.Apply(g, reserved)
//
//	gen := backtrack.New(backtrack.NewRand(42))
//	_, _ = gen.Run(g, reserved)
//
//	text, _ := render.Render(g, reserved)
//
// Most callers use [pipeline.Runner] instead, which adds caching and the
// other output formats.
//
// [core]: github.com/matzehuels/perfectmaze/pkg/core
// [core/grid]: github.com/matzehuels/perfectmaze/pkg/core/grid
// [core/pattern]: github.com/matzehuels/perfectmaze/pkg/core/pattern
// [core/backtrack]: github.com/matzehuels/perfectmaze/pkg/core/backtrack
// [core/codec]: github.com/matzehuels/perfectmaze/pkg/core/codec
// [maze]: github.com/matzehuels/perfectmaze/pkg/maze
// [cache]: github.com/matzehuels/perfectmaze/pkg/cache
// [store]: github.com/matzehuels/perfectmaze/pkg/store
// [config]: github.com/matzehuels/perfectmaze/pkg/config
// [observability]: github.com/matzehuels/perfectmaze/pkg/observability
// [pipeline]: github.com/matzehuels/perfectmaze/pkg/pipeline
// [server]: github.com/matzehuels/perfectmaze/pkg/server
// [pipeline.Runner]: github.com/matzehuels/perfectmaze/pkg/pipeline#Runner
package pkg
