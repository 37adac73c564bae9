// Package dhall is the bundled resolver: it parses a subset of the Dhall
// configuration language, fetches imports, type-checks and normalizes the
// result into a closed core.Expr.
//
// Unlike canonical Dhall normal form, records and unions keep their source
// order. Lambdas are outside the supported subset; function types are
// accepted so they can be reported as unsupported further down.
//
// Source bytes are decoded as UTF-8 by the resolver itself. No process-wide
// state is touched, so one Resolver may serve concurrent calls.
package dhall
