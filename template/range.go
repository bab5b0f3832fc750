// Package template implements the Bitauth Template Language (BTL) compiler: parsing BTL
// source, resolving identifiers against a CompilationEnvironment, and reducing a resolved
// tree to Bitcoin Script bytecode.
package template

// Range identifies a span of BTL source text. Lines and columns are 1-indexed; the end
// position is exclusive (half-open), matching the convention most text editors use for
// selections.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// MergeRanges returns the smallest range that contains every range in rs. The result takes
// the minimum start and the maximum end; order of rs does not affect the result.
func MergeRanges(rs []Range) Range {
	if len(rs) == 0 {
		return Range{}
	}

	result := rs[0]
	for _, r := range rs[1:] {
		if lessStart(r, result) {
			result.StartLine = r.StartLine
			result.StartColumn = r.StartColumn
		}
		if lessEnd(result, r) {
			result.EndLine = r.EndLine
			result.EndColumn = r.EndColumn
		}
	}

	return result
}

func lessStart(a, b Range) bool {
	if a.StartLine != b.StartLine {
		return a.StartLine < b.StartLine
	}
	return a.StartColumn < b.StartColumn
}

func lessEnd(a, b Range) bool {
	if a.EndLine != b.EndLine {
		return a.EndLine < b.EndLine
	}
	return a.EndColumn < b.EndColumn
}
