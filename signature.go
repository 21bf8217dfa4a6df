package ecs

import (
	"cmp"
	"fmt"
	"math/bits"
	"reflect"
	"strings"
)

// MaxComponentTypes is the number of distinct component types a ComponentSignature can hold.
const MaxComponentTypes = 256

const signatureWords = MaxComponentTypes / 64

// ComponentSignature is a fixed size bitset with one bit per component type id.
// The zero value is the empty signature. Signatures are comparable and can be
// used as map keys.
type ComponentSignature struct {
	words [signatureWords]uint64
}

// SignatureOf builds a signature containing the given ids.
func SignatureOf(ids ...ComponentTypeId) ComponentSignature {
	var sig ComponentSignature
	for _, id := range ids {
		sig.Require(id)
	}

	return sig
}

// Require sets the bit for component type C, registering C if needed.
func Require[C any](reg *ComponentTypeRegistry, sig *ComponentSignature) {
	sig.Require(ComponentTypeOf[C](reg))
}

// SignatureOf builds the signature of the given component types, registering them if needed.
func (r *ComponentTypeRegistry) SignatureOf(types ...reflect.Type) ComponentSignature {
	var sig ComponentSignature
	for _, ty := range types {
		sig.Require(r.TypeIdOf(ty))
	}

	return sig
}

func bitOf(id ComponentTypeId) (word int, mask uint64) {
	if int(id) >= MaxComponentTypes {
		panic(fmt.Errorf("%w: id %d, capacity %d", ErrSignatureCapacity, id, MaxComponentTypes))
	}

	return int(id) / 64, 1 << (id % 64)
}

// Require sets the bit of the given id.
func (s *ComponentSignature) Require(id ComponentTypeId) {
	word, mask := bitOf(id)
	s.words[word] |= mask
}

// Remove clears the bit of the given id.
func (s *ComponentSignature) Remove(id ComponentTypeId) {
	word, mask := bitOf(id)
	s.words[word] &^= mask
}

// Has reports whether the bit of the given id is set.
func (s ComponentSignature) Has(id ComponentTypeId) bool {
	word, mask := bitOf(id)
	return s.words[word]&mask != 0
}

// IsSubset reports whether every bit set in s is also set in other.
func (s ComponentSignature) IsSubset(other ComponentSignature) bool {
	for idx := range s.words {
		if s.words[idx]&^other.words[idx] != 0 {
			return false
		}
	}

	return true
}

// IsSuperset reports whether s contains every bit set in other.
func (s ComponentSignature) IsSuperset(other ComponentSignature) bool {
	return other.IsSubset(s)
}

func (s ComponentSignature) Equal(other ComponentSignature) bool {
	return s == other
}

// Compare defines a total order over signatures. The word holding the
// highest ids is compared first.
func (s ComponentSignature) Compare(other ComponentSignature) int {
	for idx := signatureWords - 1; idx >= 0; idx-- {
		if c := cmp.Compare(s.words[idx], other.words[idx]); c != 0 {
			return c
		}
	}

	return 0
}

// Count returns the number of bits set.
func (s ComponentSignature) Count() int {
	var count int
	for _, word := range s.words {
		count += bits.OnesCount64(word)
	}

	return count
}

func (s ComponentSignature) IsZero() bool {
	return s == ComponentSignature{}
}

// Union returns a signature with all bits of s and other.
func (s ComponentSignature) Union(other ComponentSignature) ComponentSignature {
	for idx := range s.words {
		s.words[idx] |= other.words[idx]
	}

	return s
}

// Ids returns the set component type ids in ascending order.
func (s ComponentSignature) Ids() []ComponentTypeId {
	ids := make([]ComponentTypeId, 0, s.Count())

	for idx, word := range s.words {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			ids = append(ids, ComponentTypeId(idx*64+bit))
			word &= word - 1
		}
	}

	return ids
}

func (s ComponentSignature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')

	for idx, id := range s.Ids() {
		if idx > 0 {
			sb.WriteByte(',')
		}

		_, _ = fmt.Fprintf(&sb, "%d", id)
	}

	sb.WriteByte('}')
	return sb.String()
}
