// Package loom provides the public API for the loom rendering library.
//
// This is the recommended import for most applications:
//
//	import "github.com/loomdev/loom"
//
// Usage:
//
//	row := []string{"<li>", "</li>"}
//	list := []string{"<ul>", "</ul>"}
//	items := []any{
//		loom.HTML(row, "1").WithKey("a"),
//		loom.HTML(row, "2").WithKey("b"),
//	}
//	loom.Mount(loom.HTML(list, items), container)
package loom

import (
	"github.com/loomdev/loom/pkg/dom"
	"github.com/loomdev/loom/pkg/emitter"
	coreloom "github.com/loomdev/loom/pkg/loom"
)

// =============================================================================
// Templates and components (re-export from pkg/loom)
// =============================================================================

// Partial is an immutable description of desired content.
type Partial = coreloom.Partial

// Component pairs a user function with captured arguments and a key.
type Component = coreloom.Component

// ComponentFunc is a user component body.
type ComponentFunc = coreloom.ComponentFunc

// CleanupFunc is the after-unmount handler shape.
type CleanupFunc = coreloom.CleanupFunc

// EmitFunc publishes an event on the owning mount's emitter.
type EmitFunc = coreloom.EmitFunc

// Generator is the resumable multi-step lifecycle protocol.
type Generator = coreloom.Generator

// Awaitable marks values that settle asynchronously (a misuse to return
// from a component while pending).
type Awaitable = coreloom.Awaitable

// HTML builds a Partial from a fragment sequence and interpolation values.
var HTML = coreloom.HTML

// SVG builds a namespaced-markup Partial.
var SVG = coreloom.SVG

// NewComponent wraps a component function with captured arguments.
var NewComponent = coreloom.NewComponent

// Steps builds a Generator from a fixed sequence of step functions.
var Steps = coreloom.Steps

// =============================================================================
// Mounting and context access
// =============================================================================

// Context is the per-mount-point record.
type Context = coreloom.Context

// Mount renders content into target, reusing a matching context.
var Mount = coreloom.Mount

// Unmount tears down whatever is mounted at target.
var Unmount = coreloom.Unmount

// ContextOf returns the context associated with a live node, if any.
var ContextOf = coreloom.ContextOf

// Use invokes fn with the active context's state and emit function.
var Use = coreloom.Use

// Compile turns a fragment sequence into its canonical template tree.
var Compile = coreloom.Compile

// Compatible is the node reuse predicate.
var Compatible = coreloom.Compatible

// Lifecycle phases.
const (
	BeforeFirstRender = coreloom.BeforeFirstRender
	AfterUnmount      = coreloom.AfterUnmount
	AfterUpdate       = coreloom.AfterUpdate
	AfterRender       = coreloom.AfterRender
)

// RenderEvent is the emitter event that requests a fresh render pass.
const RenderEvent = coreloom.RenderEvent

// =============================================================================
// External references
// =============================================================================

// Ref is an external reference handle bound via the "ref" attribute.
type Ref = coreloom.Ref

// NewRef creates an unbound reference handle.
var NewRef = coreloom.NewRef

// =============================================================================
// Collaborators
// =============================================================================

// Node is a live tree node.
type Node = dom.Node

// NewElement creates a detached element node, typically a mount target.
var NewElement = dom.NewElement

// Emitter is the per-mount publish/subscribe bus.
type Emitter = emitter.Emitter

// =============================================================================
// Instrumentation (re-export from pkg/loom)
// =============================================================================

// Metrics holds the registered Prometheus collectors.
type Metrics = coreloom.Metrics

// MetricsOption configures EnableMetrics.
type MetricsOption = coreloom.MetricsOption

// EnableMetrics turns on Prometheus instrumentation.
var EnableMetrics = coreloom.EnableMetrics

// WithNamespace sets the metrics namespace.
var WithNamespace = coreloom.WithNamespace

// WithSubsystem sets the metrics subsystem.
var WithSubsystem = coreloom.WithSubsystem

// WithBuckets sets the pass-duration histogram buckets.
var WithBuckets = coreloom.WithBuckets

// WithRegistry sets the Prometheus registry.
var WithRegistry = coreloom.WithRegistry
