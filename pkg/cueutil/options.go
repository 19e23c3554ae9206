// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxSize caps the documents Decode accepts when no WithMaxSize
// option is given.
const DefaultMaxSize int64 = 5 << 20

type (
	decodeOptions struct {
		filename string
		maxSize  int64
		partial  bool
	}

	// Option configures Decode.
	Option func(*decodeOptions)
)

func newDecodeOptions(opts []Option) decodeOptions {
	o := decodeOptions{filename: "<input>", maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFilename names the document in CUE positions and error messages.
func WithFilename(name string) Option {
	return func(o *decodeOptions) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithMaxSize rejects documents larger than n bytes before compiling them.
func WithMaxSize(n int64) Option {
	return func(o *decodeOptions) {
		o.maxSize = n
	}
}

// WithPartial accepts documents that leave optional schema fields without a
// concrete value. Settings files use it; catalogs must be complete.
func WithPartial() Option {
	return func(o *decodeOptions) {
		o.partial = true
	}
}
