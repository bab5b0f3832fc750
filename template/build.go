package template

import "math/big"

// Build walks a parse tree produced by Parse, applying Resolve to every Identifier segment,
// and returns the resulting ResolvedScript. It is a pure map: no identifier resolution
// decision depends on sibling or parent segments beyond the cycle-detection chain already
// carried in ctx.
func Build(segments []Segment, ctx ResolveContext) ResolvedScript {
	if len(segments) == 0 {
		return ResolvedScript{{Kind: ResolvedSegmentKindComment, CommentValue: ""}}
	}

	result := make(ResolvedScript, 0, len(segments))
	for _, segment := range segments {
		result = append(result, buildOne(segment, ctx))
	}
	return result
}

func buildOne(segment Segment, ctx ResolveContext) ResolvedSegment {
	switch segment.Kind {
	case SegmentKindIdentifier:
		return buildIdentifier(segment, ctx)

	case SegmentKindPush:
		return ResolvedSegment{
			Kind:  ResolvedSegmentKindPush,
			Range: segment.Range,
			Value: Build(segment.Children, ctx),
		}

	case SegmentKindEvaluation:
		return ResolvedSegment{
			Kind:  ResolvedSegmentKindEvaluation,
			Range: segment.Range,
			Value: Build(segment.Children, ctx),
		}

	case SegmentKindBigIntLiteral:
		n, ok := new(big.Int).SetString(segment.BigInt, 10)
		if !ok {
			return ResolvedSegment{
				Kind: ResolvedSegmentKindError, Range: segment.Range,
				ErrorValue: "Invalid integer literal '" + segment.BigInt + "'.",
			}
		}
		return ResolvedSegment{
			Kind: ResolvedSegmentKindBytecode, Range: segment.Range,
			BytecodeKind: BytecodeKindLiteral, LiteralKind: LiteralKindBigInt,
			Bytes: BigIntToScriptNumber(n),
		}

	case SegmentKindHexLiteral:
		b, err := HexToBin(segment.Hex)
		if err != nil {
			return ResolvedSegment{
				Kind: ResolvedSegmentKindError, Range: segment.Range,
				ErrorValue: "Invalid hex literal '" + segment.Hex + "': " + err.Error(),
			}
		}
		return ResolvedSegment{
			Kind: ResolvedSegmentKindBytecode, Range: segment.Range,
			BytecodeKind: BytecodeKindLiteral, LiteralKind: LiteralKindHex, Bytes: b,
		}

	case SegmentKindUTF8Literal:
		return ResolvedSegment{
			Kind: ResolvedSegmentKindBytecode, Range: segment.Range,
			BytecodeKind: BytecodeKindLiteral, LiteralKind: LiteralKindUTF8,
			Bytes: Utf8ToBin(segment.UTF8),
		}

	case SegmentKindComment:
		return ResolvedSegment{Kind: ResolvedSegmentKindComment, Range: segment.Range, CommentValue: segment.Comment}

	default:
		return ResolvedSegment{Kind: ResolvedSegmentKindError, Range: segment.Range, ErrorValue: "Unrecognized segment kind."}
	}
}

func buildIdentifier(segment Segment, ctx ResolveContext) ResolvedSegment {
	result := Resolve(segment.Identifier, ctx)
	if !result.OK {
		return ResolvedSegment{Kind: ResolvedSegmentKindError, Range: segment.Range, ErrorValue: result.Message}
	}

	resolved := ResolvedSegment{
		Kind:         ResolvedSegmentKindBytecode,
		Range:        segment.Range,
		BytecodeKind: resolutionToBytecodeKind(result.Kind),
		Bytes:        result.Bytecode,
	}

	switch result.Kind {
	case ResolutionKindOpcode:
		resolved.Opcode = segment.Identifier
	case ResolutionKindVariable:
		resolved.Variable = segment.Identifier
	case ResolutionKindScript:
		resolved.Script = segment.Identifier
		resolved.Source = result.Source
	}

	return resolved
}

func resolutionToBytecodeKind(k ResolutionKind) BytecodeKind {
	switch k {
	case ResolutionKindOpcode:
		return BytecodeKindOpcode
	case ResolutionKindVariable:
		return BytecodeKindVariable
	case ResolutionKindScript:
		return BytecodeKindScript
	default:
		return 0
	}
}
