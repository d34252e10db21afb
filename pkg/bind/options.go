package bind

import (
	"io"
	"log"

	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

// Option customises a binding.
type Option func(*options)

type options struct {
	variant  pipeline.Variant
	config   pipeline.Config
	pre      PreCommitHook
	post     PostCommitHook
	metadata any
	logger   *log.Logger
}

func newOptions(opts []Option) options {
	o := options{
		variant: pipeline.VariantAll,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithVariant selects the value-domain interpretation.
func WithVariant(v pipeline.Variant) Option {
	return func(o *options) {
		if v != "" {
			o.variant = v
		}
	}
}

// WithConfig merges cfg over the configuration collected so far, so shared
// defaults can be refined per field.
func WithConfig(cfg pipeline.Config) Option {
	return func(o *options) {
		o.config = o.config.Merge(cfg)
	}
}

// WithPreCommit installs the hook that may veto a change.
func WithPreCommit(hook PreCommitHook) Option {
	return func(o *options) {
		o.pre = hook
	}
}

// WithPostCommit installs the hook notified after a write.
func WithPostCommit(hook PostCommitHook) Option {
	return func(o *options) {
		o.post = hook
	}
}

// WithMetadata attaches caller data passed to both hooks.
func WithMetadata(metadata any) Option {
	return func(o *options) {
		o.metadata = metadata
	}
}

// WithLogger traces rejected and vetoed changes.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
