// Package attribution extracts campaign parameters from a landing URL and keeps
// the current record in durable storage.
package attribution

import (
	"github.com/samber/lo"
)

// Key is one of the fixed attribution dimensions.
type Key string

const (
	Source   Key = "source"
	Medium   Key = "medium"
	Campaign Key = "campaign"
	Content  Key = "content"
	Term     Key = "term"
)

// Keys lists every recognised key in extraction order.
var Keys = []Key{Source, Medium, Campaign, Content, Term}

// Param is the query parameter a key is read from.
func (k Key) Param() string {
	return "utm_" + string(k)
}

// Record maps attribution keys to non-empty values. A key is present only if its
// parameter carried a value on the capturing page view.
type Record map[Key]string

// Empty reports whether the record holds no keys.
func (r Record) Empty() bool {
	return len(r) == 0
}

// Get returns the value for k, or "" when absent.
func (r Record) Get(k Key) string {
	return r[k]
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	return lo.Assign(Record{}, r)
}

// Known drops keys outside the fixed set and empty values.
func (r Record) Known() Record {
	return lo.PickBy(r, func(k Key, v string) bool {
		return v != "" && lo.Contains(Keys, k)
	})
}

// Params is a query-parameter accessor. url.Values satisfies it.
type Params interface {
	Get(key string) string
}

// Extract reads exactly the recognised keys from params. Unknown parameters are
// ignored and empty values are treated as absent.
func Extract(params Params) Record {
	record := Record{}
	if params == nil {
		return record
	}
	for _, k := range Keys {
		if v := params.Get(k.Param()); v != "" {
			record[k] = v
		}
	}
	return record
}
