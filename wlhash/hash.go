package wlhash

import (
	"crypto/md5"
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ringSize is the largest prime below 2^64 (2^64 - 59), used by the
// prime-ring combine variant. ISOHash2.h cites
// https://t5k.org/lists/2small/0bit.html for this constant.
const ringSize Hash = math.MaxUint64 - 58

// ScalarHasher hashes a fixed-size, flat (pointer-free) record down to a
// single Hash. ISOHash2.h's hash<T>() is a template over the record type;
// here the record shapes that ever get hashed (a Hash scalar, a clause
// size, and a LitColors pair) each get their own method, matching the
// handful of instantiations the C++ actually uses.
type ScalarHasher interface {
	HashUint64(v uint64) Hash
	HashLitColors(lc LitColors) Hash
}

// xxh3Hasher hashes via github.com/cespare/xxhash/v2 (ISOHash2.h's
// use_xxh3 = true branch: XXH3_64bits over the record's raw bytes).
type xxh3Hasher struct{}

func (xxh3Hasher) HashUint64(v uint64) Hash {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return xxhash.Sum64(b[:])
}

func (xxh3Hasher) HashLitColors(lc LitColors) Hash {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], lc.P)
	binary.LittleEndian.PutUint64(b[8:16], lc.N)
	return xxhash.Sum64(b[:])
}

// md5Hasher hashes via crypto/md5, truncating the digest to its first 8
// bytes (ISOHash2.h's use_xxh3 = false branch).
type md5Hasher struct{}

func (md5Hasher) HashUint64(v uint64) Hash {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return truncatedMD5(b[:])
}

func (md5Hasher) HashLitColors(lc LitColors) Hash {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], lc.P)
	binary.LittleEndian.PutUint64(b[8:16], lc.N)
	return truncatedMD5(b[:])
}

func truncatedMD5(b []byte) Hash {
	sum := md5.Sum(b)
	return binary.LittleEndian.Uint64(sum[:8])
}

// primeRingHasher wraps an underlying ScalarHasher and rejects outputs that
// would bias the mod-ringSize reduction (ISOHash2.h's use_prime_ring
// branch): it reseeds and rehashes until the raw hash falls below the
// largest multiple of ringSize under 2^64, then reduces mod ringSize.
type primeRingHasher struct {
	inner ScalarHasher
}

func (p primeRingHasher) reduce(raw Hash) Hash {
	const maxU64 = ^uint64(0)
	firstProblem := maxU64 - maxU64%uint64(ringSize)
	h := maxU64
	seed := uint16(0)
	for h >= firstProblem {
		h = p.inner.HashUint64(raw ^ uint64(seed)<<48 ^ uint64(seed))
		seed++
	}
	return h % ringSize
}

func (p primeRingHasher) HashUint64(v uint64) Hash {
	return p.reduce(p.inner.HashUint64(v))
}

func (p primeRingHasher) HashLitColors(lc LitColors) Hash {
	return p.reduce(p.inner.HashLitColors(lc))
}

// combine folds in into *acc, commutatively and associatively, so that the
// final color of a literal or clause doesn't depend on the order its
// neighbors were visited (spec.md §3 "commutative combining of colors").
// Under UsePrimeRing, addition wraps at ringSize instead of at 2^64, so
// zero stays a fixed point of the ring's group structure. Otherwise
// (spec.md §4.5/§9) it's end-around-carry addition, `acc + in + carry`
// where carry is 1 on uint64 overflow: the same fold used by Internet
// checksums, preferred over plain wrapping add because it never turns two
// nonzero inputs into a zero result.
func combine(usePrimeRing bool, acc *Hash, in Hash) {
	if usePrimeRing {
		in %= ringSize
		firstOverflowAcc := ringSize - in
		if *acc >= firstOverflowAcc {
			*acc -= firstOverflowAcc
			return
		}
		*acc += in
		return
	}
	const maxU64 = ^uint64(0)
	if *acc > maxU64-in {
		*acc += in + 1
	} else {
		*acc += in
	}
}
