package dhall

import (
	"strings"

	"dhallgen/core"
	"dhallgen/internal/errors"
)

// errCollision is returned when a recursive merge meets two non-record
// values under the same field.
type errCollision struct {
	path []string
}

func (e *errCollision) Error() string {
	return "field collision on " + strings.Join(e.path, ".")
}

// prefer is the right-biased shallow merge: fields of r replace fields of l
// with the same name in place, new fields are appended in r's order.
func prefer(l, r core.Fields) core.Fields {
	out := make(core.Fields, 0, len(l)+len(r))

	for _, f := range l {
		if v, ok := r.Lookup(f.Name); ok {
			f.Value = v
		}

		out = append(out, f)
	}

	for _, f := range r {
		if _, ok := l.Lookup(f.Name); !ok {
			out = append(out, f)
		}
	}

	return out
}

// combineLit merges two record literals recursively.
func combineLit(l, r core.Fields) (core.Fields, error) {
	return combine(l, r, nil, func(e core.Expr) (core.Fields, bool) {
		rec, ok := e.(core.RecordLit)
		return rec.Fields, ok
	}, func(fs core.Fields) core.Expr {
		return core.RecordLit{Fields: fs}
	})
}

// combineTypes merges two record types recursively.
func combineTypes(l, r core.Fields) (core.Fields, error) {
	return combine(l, r, nil, func(e core.Expr) (core.Fields, bool) {
		rec, ok := e.(core.RecordType)
		return rec.Fields, ok
	}, func(fs core.Fields) core.Expr {
		return core.RecordType{Fields: fs}
	})
}

func combine(
	l, r core.Fields,
	path []string,
	unwrap func(core.Expr) (core.Fields, bool),
	wrap func(core.Fields) core.Expr,
) (core.Fields, error) {
	out := make(core.Fields, 0, len(l)+len(r))

	for _, f := range l {
		rv, ok := r.Lookup(f.Name)
		if !ok {
			out = append(out, f)
			continue
		}

		here := append(path[:len(path):len(path)], f.Name)

		lf, lok := unwrap(f.Value)
		rf, rok := unwrap(rv)

		if !lok || !rok {
			return nil, errors.WithStack(&errCollision{path: here})
		}

		merged, err := combine(lf, rf, here, unwrap, wrap)
		if err != nil {
			return nil, err
		}

		out = append(out, core.Field{Name: f.Name, Value: wrap(merged)})
	}

	for _, f := range r {
		if _, ok := l.Lookup(f.Name); !ok {
			out = append(out, f)
		}
	}

	return out, nil
}
