package mapz

import (
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . DictionaryOptions

// DictionaryOptions are the options for constructing a MultipleDictionary.
type DictionaryOptions struct {
	// InitialKeyCapacity is the number of keys the dictionary holds before its
	// hash table first grows.
	InitialKeyCapacity uint32 `debugmap:"visible" default:"8"`

	// InitialValueCapacity is the capacity of the value array allocated for
	// a newly added key. Arrays double in size as values are added.
	InitialValueCapacity uint32 `debugmap:"visible" default:"1"`

	// MetricsName, if not empty, registers the dictionary under this name
	// with the package's Prometheus collector until Close is called.
	MetricsName string `debugmap:"visible"`
}

func (o *DictionaryOptions) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("initialKeyCapacity", humanize.Comma(int64(o.InitialKeyCapacity))).
		Str("initialValueCapacity", humanize.Comma(int64(o.InitialValueCapacity))).
		Str("metricsName", o.MetricsName)
}
