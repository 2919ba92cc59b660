// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certificate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cashapp/certifikit/src/attestation"
	"github.com/cashapp/certifikit/src/der"
)

// ExtensionCodec decodes and encodes one extension's value. Build it with
// [ExtensionValue].
type ExtensionCodec interface {
	decodeValue(r *der.Reader) (any, error)
	encodeValue(w *der.Writer, v any) bool
}

type extensionCodec[T any] struct {
	a der.Adapter[T]
}

// ExtensionValue returns a codec that stores extension values decoded by a
// as T.
func ExtensionValue[T any](a der.Adapter[T]) ExtensionCodec {
	return extensionCodec[T]{a: a}
}

func (c extensionCodec[T]) decodeValue(r *der.Reader) (any, error) {
	return c.a.Decode(r)
}

func (c extensionCodec[T]) encodeValue(w *der.Writer, v any) bool {
	t, ok := v.(T)
	if ok {
		c.a.Encode(w, t)
	}
	return ok
}

// Registry maps extension OIDs to the codecs for their values. A Registry
// is immutable and safe for concurrent use.
type Registry struct {
	values map[string]*der.Basic[any]
	oids   []string
}

// NewRegistry returns a registry for codecs, keyed by extension OID.
func NewRegistry(codecs map[string]ExtensionCodec) *Registry {
	r := &Registry{values: make(map[string]*der.Basic[any], len(codecs))}
	for oid, codec := range codecs {
		r.values[oid] = extensionValue(oid, codec)
	}
	r.oids = slices.Sorted(maps.Keys(r.values))
	return r
}

// With returns a copy of r that also maps oid to codec, replacing any
// existing entry.
func (r *Registry) With(oid string, codec ExtensionCodec) *Registry {
	c := &Registry{values: maps.Clone(r.values)}
	c.values[oid] = extensionValue(oid, codec)
	c.oids = slices.Sorted(maps.Keys(c.values))
	return c
}

// OIDs returns the registered extension OIDs in sorted order.
func (r *Registry) OIDs() []string { return slices.Clone(r.oids) }

// Has reports whether oid is registered.
func (r *Registry) Has(oid string) bool {
	_, ok := r.values[oid]
	return ok
}

func (r *Registry) value(oid string) *der.Basic[any] {
	if v, ok := r.values[oid]; ok {
		return v
	}
	return rawExtensionValue
}

// extensionValue wraps codec in the extnValue OCTET STRING. Values that do
// not have the codec's type may still be supplied as raw bytes.
func extensionValue(oid string, codec ExtensionCodec) *der.Basic[any] {
	return der.NewBasic("extnValue("+oid+")", der.ClassUniversal, der.TagOctetString, false,
		func(r *der.Reader, _ der.Header) (any, error) {
			return codec.decodeValue(r)
		},
		func(w *der.Writer, v any) {
			if codec.encodeValue(w, v) {
				return
			}
			b, ok := v.([]byte)
			if !ok {
				panic(fmt.Sprintf("certificate: extension %s cannot encode %T", oid, v))
			}
			w.WriteBytes(b)
		},
	)
}

var rawExtensionValue = der.NewBasic("extnValue", der.ClassUniversal, der.TagOctetString, false,
	func(r *der.Reader, _ der.Header) (any, error) {
		return r.ReadRemaining(), nil
	},
	func(w *der.Writer, v any) {
		b, ok := v.([]byte)
		if !ok {
			panic(fmt.Sprintf("certificate: unregistered extension value must be []byte, got %T", v))
		}
		w.WriteBytes(b)
	},
)

var defaultRegistry = NewRegistry(map[string]ExtensionCodec{
	OIDSubjectAlternativeName: ExtensionValue(GeneralNamesAdapter),
	OIDBasicConstraints:       ExtensionValue(BasicConstraintsAdapter),
	OIDKeyUsage:               ExtensionValue(der.BitStringAdapter),
	OIDExtKeyUsage:            ExtensionValue(ExtKeyUsageAdapter),
	OIDAuthorityInfoAccess:    ExtensionValue(AuthorityInfoAccessAdapter),
	OIDCRLDistributionPoints:  ExtensionValue(CRLDistributionPointsAdapter),
	OIDKeyDescription:         ExtensionValue(attestation.KeyDescriptionAdapter),
	OIDSubjectKeyIdentifier:   ExtensionValue(der.OctetString),
	OIDAuthorityKeyIdentifier: ExtensionValue(AuthorityKeyIdentifierAdapter),
})

// DefaultRegistry returns the registry for the extensions this package
// understands: subjectAlternativeName, basicConstraints, keyUsage,
// extKeyUsage, authorityInfoAccess, cRLDistributionPoints, the Android key
// attestation extension, subjectKeyIdentifier and authorityKeyIdentifier.
func DefaultRegistry() *Registry { return defaultRegistry }

// extensionAdapter reads and writes Extension, typing extnValue through reg.
func extensionAdapter(reg *Registry) *der.Basic[Extension] {
	critical := der.WithDefault(der.Boolean, false)
	return der.NewBasic("Extension", der.ClassUniversal, der.TagSequence, true,
		func(r *der.Reader, _ der.Header) (Extension, error) {
			id, err := der.ObjectIdentifier.Decode(r)
			if err != nil {
				return Extension{}, err
			}
			isCritical, err := critical.Decode(r)
			if err != nil {
				return Extension{}, err
			}
			value, err := reg.value(id).Decode(r)
			if err != nil {
				return Extension{}, err
			}
			return Extension{ID: id, Critical: isCritical, Value: value}, nil
		},
		func(w *der.Writer, e Extension) {
			der.ObjectIdentifier.Encode(w, e.ID)
			critical.Encode(w, e.Critical)
			reg.value(e.ID).Encode(w, e.Value)
		},
	)
}
