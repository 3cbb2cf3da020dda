package callable

import (
	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Default annotation keys set by New.
const (
	AnnotationInput  = "input"
	AnnotationReturn = "return"
)

// Annotations maps parameter names to declared types in declaration order.
type Annotations = orderedmap.OrderedMap[string, string]

// NewAnnotations returns an empty annotation mapping.
func NewAnnotations() *Annotations {
	return orderedmap.New[string, string]()
}

// Meta is the identity of a callable: what it is called, what it does and what it accepts.
type Meta struct {
	Name        string
	Description string
	Annotations *Annotations
}

// Clone returns a deep copy of m, so callers can never mutate a callable's metadata.
func (m Meta) Clone() Meta {
	out := Meta{
		Name:        m.Name,
		Description: m.Description,
		Annotations: NewAnnotations(),
	}
	if m.Annotations == nil {
		return out
	}
	for pair := m.Annotations.Oldest(); pair != nil; pair = pair.Next() {
		out.Annotations.Set(pair.Key, pair.Value)
	}
	return out
}

// AnnotationMap returns the annotations as a plain map, suitable for log fields.
func (m Meta) AnnotationMap() map[string]string {
	if m.Annotations == nil {
		return map[string]string{}
	}
	return lo.Associate(m.AnnotationKeys(), func(k string) (string, string) {
		v, _ := m.Annotations.Get(k)
		return k, v
	})
}

// AnnotationKeys returns the annotated parameter names in declaration order.
func (m Meta) AnnotationKeys() []string {
	if m.Annotations == nil {
		return nil
	}
	keys := make([]string, 0, m.Annotations.Len())
	for pair := m.Annotations.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Option customizes the metadata attached by New.
type Option func(*options)

type options struct {
	meta      Meta
	annotated bool
}

// WithName overrides the name derived from the Go symbol.
func WithName(name string) Option {
	return func(o *options) {
		o.meta.Name = name
	}
}

// WithDescription sets the human readable description.
func WithDescription(description string) Option {
	return func(o *options) {
		o.meta.Description = description
	}
}

// WithAnnotation declares the type of a parameter.
//
// The first call replaces the default input/return annotations, subsequent calls append.
func WithAnnotation(param, typ string) Option {
	return func(o *options) {
		if !o.annotated {
			o.meta.Annotations = NewAnnotations()
			o.annotated = true
		}
		o.meta.Annotations.Set(param, typ)
	}
}
