package core

import (
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// absent marks a position in the source array with no previous counterpart.
const absent = -1

// patchKeyedChildren reconciles two keyed sibling lists.
//
// Common prefix and suffix pairs are patched in place. What remains is
// resolved by matching keys: unmatched previous children are removed,
// unmatched next children mounted, and matched children are moved only when
// they fall outside the longest increasing subsequence of their previous
// positions.
func (r *Renderer) patchKeyedChildren(prev, next []*Node, container, end host.Node, svg bool) {
	const op = "core.patchKeyedChildren"
	for _, c := range next {
		if c.Key == "" {
			panic(errors.Invariant(op, "unkeyed %s in multi-child list", c))
		}
	}

	j := 0
	prevEnd, nextEnd := len(prev)-1, len(next)-1

	for j <= prevEnd && j <= nextEnd && prev[j].Key == next[j].Key {
		r.patch(prev[j], next[j], container, svg)
		j++
	}
	for j <= prevEnd && j <= nextEnd && prev[prevEnd].Key == next[nextEnd].Key {
		r.patch(prev[prevEnd], next[nextEnd], container, svg)
		prevEnd--
		nextEnd--
	}

	// anchorAfter is the host node the next child at pos must precede.
	anchorAfter := func(pos int) host.Node {
		if pos+1 < len(next) {
			return next[pos+1].host
		}
		return end
	}

	switch {
	case j > prevEnd && j > nextEnd:
		return
	case j > prevEnd:
		ref := anchorAfter(nextEnd)
		for i := j; i <= nextEnd; i++ {
			r.mount(next[i], container, svg, ref)
		}
		return
	case j > nextEnd:
		for i := j; i <= prevEnd; i++ {
			r.remove(prev[i], container, true)
		}
		return
	}

	count := nextEnd - j + 1
	source := make([]int, count)
	for i := range source {
		source[i] = absent
	}
	keyIndex := make(map[string]int, count)
	for i := j; i <= nextEnd; i++ {
		if _, dup := keyIndex[next[i].Key]; dup {
			panic(errors.DuplicateKey(op, next[i].Key))
		}
		keyIndex[next[i].Key] = i
	}

	moved := false
	lastPos := 0
	patched := 0
	for i := j; i <= prevEnd; i++ {
		p := prev[i]
		if patched >= count {
			r.remove(p, container, true)
			continue
		}
		k, ok := keyIndex[p.Key]
		if !ok {
			r.remove(p, container, true)
			continue
		}
		if source[k-j] != absent {
			panic(errors.DuplicateKey(op, p.Key))
		}
		r.patch(p, next[k], container, svg)
		patched++
		source[k-j] = i
		if k < lastPos {
			moved = true
		} else {
			lastPos = k
		}
	}

	if !moved && patched == count {
		return
	}

	seq := longestIncreasingSubsequence(source)
	s := len(seq) - 1
	for i := count - 1; i >= 0; i-- {
		pos := j + i
		switch {
		case source[i] == absent:
			r.mount(next[pos], container, svg, anchorAfter(pos))
		case s < 0 || seq[s] != i:
			r.move(next[pos], container, anchorAfter(pos))
		default:
			s--
		}
	}
}
