// Copyright © 2019 Shunsuke Tonogai

package codec

import "github.com/tonogaishunsuke/xenonpy/pkg/tabular"

// Kind discriminates the two artifact encodings.
type Kind int

const (
	// KindTabular marks rows x named-columns data, stored with ExtTabular.
	KindTabular Kind = iota
	// KindOpaque marks any other serializable value, stored with ExtOpaque.
	KindOpaque
)

// Value is the tagged variant moved in and out of artifact files.
// Construct with Tabular or Opaque; the zero value is an opaque nil.
type Value struct {
	kind   Kind
	table  *tabular.Table
	opaque interface{}
}

// Tabular wraps a table as an artifact value.
func Tabular(t *tabular.Table) Value {
	return Value{kind: KindTabular, table: t}
}

// Opaque wraps any CBOR-serializable value as an artifact value.
func Opaque(v interface{}) Value {
	return Value{kind: KindOpaque, opaque: v}
}

// Kind returns the value's encoding kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsTabular reports whether the value holds a table.
func (v Value) IsTabular() bool {
	return v.kind == KindTabular
}

// Table returns the held table, nil for opaque values.
func (v Value) Table() *tabular.Table {
	return v.table
}

// Opaque returns the held opaque value, nil for tabular values.
func (v Value) Opaque() interface{} {
	return v.opaque
}

// Ext returns the file extension signaling this value's encoding.
func (v Value) Ext() string {
	if v.kind == KindTabular {
		return ExtTabular
	}
	return ExtOpaque
}
