package scanner

import "github.com/rpmspec-tools/speclex/cursor"

// serializedSize is the byte length of a serialized Scanner: one byte for
// the cache-valid flag and one for the cached classification.
const serializedSize = 2

// Scanner holds the state that survives across Scan calls. The only such
// state is a single-slot cache of the last conditional-body classification:
// resolving one ambiguous conditional can involve several scan attempts at
// the same position, and the cache keeps each of them from re-walking the
// body.
//
// One Scanner serves one parse session. The hosting engine serializes the
// state before an incremental edit and restores it afterwards so re-scans
// observe the same classification they would have seen in a full parse.
type Scanner struct {
	cacheValid      bool
	cacheHasSection bool

	recognizers []recognizer
}

// New returns a Scanner with zeroed state.
func New() *Scanner {
	return &Scanner{recognizers: defaultRecognizers}
}

// Reset returns the scanner to its zeroed state, as if newly created.
func (s *Scanner) Reset() {
	s.cacheValid = false
	s.cacheHasSection = false
}

// Serialize encodes the scanner state. The layout is two bytes, each 0 or
// 1: the cache-valid flag and the cached has-section result.
func (s *Scanner) Serialize() []byte {
	buf := make([]byte, serializedSize)
	if s.cacheValid {
		buf[0] = 1
	}
	if s.cacheHasSection {
		buf[1] = 1
	}
	return buf
}

// Deserialize restores state produced by Serialize. A truncated or
// malformed buffer clears the cache instead of failing; a cold cache is
// always safe, it only costs a re-scan.
func (s *Scanner) Deserialize(buf []byte) {
	s.cacheValid = false
	s.cacheHasSection = false

	if len(buf) < serializedSize {
		return
	}
	s.cacheValid = buf[0] != 0
	s.cacheHasSection = buf[1] != 0
}

// cachedLookahead returns the conditional-body classification for the
// block starting at the cursor, computing and caching it on first use.
func (s *Scanner) cachedLookahead(cur *cursor.Cursor) bool {
	if s.cacheValid {
		return s.cacheHasSection
	}
	s.cacheHasSection = lookaheadFindsSection(cur)
	s.cacheValid = true
	return s.cacheHasSection
}

// invalidateLookahead drops the cached classification. Called when the
// parser commits to an unambiguous context: the cached result belongs to a
// block that is now behind us, and a nested conditional of different shape
// must not reuse it.
func (s *Scanner) invalidateLookahead() {
	s.cacheValid = false
	s.cacheHasSection = false
}
