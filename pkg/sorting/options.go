package sorting

import (
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultSortParam      = "sort"
	DefaultDirectionParam = "direction"
	DefaultSortUp         = "&uarr;"
	DefaultSortDown       = "&darr;"
)

type Options struct {
	SortParam      string
	DirectionParam string
	Icons          Icons
	// InvalidFieldRaises404 makes AutoSort report unknown fields as
	// ErrNotFound instead of returning the collection unchanged.
	InvalidFieldRaises404 bool
	Logger                *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		SortParam:      DefaultSortParam,
		DirectionParam: DefaultDirectionParam,
		Icons:          Icons{Up: DefaultSortUp, Down: DefaultSortDown},
		Logger:         zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.SortParam) == "" {
		opts.SortParam = DefaultSortParam
	}
	if strings.TrimSpace(opts.DirectionParam) == "" {
		opts.DirectionParam = DefaultDirectionParam
	}
	if opts.Icons.Up == "" {
		opts.Icons.Up = DefaultSortUp
	}
	if opts.Icons.Down == "" {
		opts.Icons.Down = DefaultSortDown
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithParams(sortParam, directionParam string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SortParam = strings.TrimSpace(sortParam)
		o.DirectionParam = strings.TrimSpace(directionParam)
	}
}

func WithIcons(up, down string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Icons = Icons{Up: up, Down: down}
	}
}

func WithInvalidFieldRaises404(strict bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.InvalidFieldRaises404 = strict
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
