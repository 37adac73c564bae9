// Package core defines the closed expression tree produced by resolving a
// configuration expression.
//
// Every node is immutable once built. Records and unions keep their fields
// and alternatives in source order; nothing in this package sorts them.
//
// Generated code imports this package to rebuild embedded values, so it has
// no dependency on the resolver.
package core
