// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode checks data against the definition def (such as "#Catalog") of the
// CUE schema and decodes the unified value into a T.
//
// Each call compiles in its own CUE context, so Decode is safe to call from
// several goroutines.
func Decode[T any](schema []byte, def string, data []byte, opts ...Option) (*T, error) {
	o := newDecodeOptions(opts)
	if size := int64(len(data)); size > o.maxSize {
		return nil, &FileTooLargeError{Filename: o.filename, Size: size, Limit: o.maxSize}
	}

	ctx := cuecontext.New()
	compiled := ctx.CompileBytes(schema)
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	root := compiled.LookupPath(cue.ParsePath(def))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("schema has no definition %s: %w", def, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return nil, formatError(err, o.filename)
	}
	unified := root.Unify(doc)
	if err := unified.Validate(cue.Concrete(!o.partial)); err != nil {
		return nil, formatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, formatError(err, o.filename)
	}
	return &out, nil
}
