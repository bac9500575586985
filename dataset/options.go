package dataset

// DefaultDelimiter separates fields unless WithDelimiter is given.
const DefaultDelimiter = ';'

type options struct {
	delimiter rune
	header    bool
	names     []string
}

// Option configures Read and Write.
type Option func(*options)

// WithDelimiter sets the field delimiter.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

// WithoutHeader makes Read treat the first row as data.
func WithoutHeader() Option {
	return func(o *options) {
		o.header = false
	}
}

// WithHeader makes Write emit names as the first row.
func WithHeader(names ...string) Option {
	return func(o *options) {
		o.names = names
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		delimiter: DefaultDelimiter,
		header:    true,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
