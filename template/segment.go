package template

// SegmentKind discriminates the variants of a Segment, following the same tagged-struct
// pattern the bitcoin package uses for ScriptItem rather than one interface per variant.
type SegmentKind uint8

const (
	SegmentKindIdentifier SegmentKind = iota + 1
	SegmentKindPush
	SegmentKindEvaluation
	SegmentKindBigIntLiteral
	SegmentKindHexLiteral
	SegmentKindUTF8Literal
	SegmentKindComment
)

// Segment is a single node of the parse tree produced by Parse. Only the fields relevant to
// Kind are populated; callers must switch on Kind before reading a payload field.
type Segment struct {
	Kind  SegmentKind
	Range Range

	Identifier string       // SegmentKindIdentifier
	Children   []Segment    // SegmentKindPush, SegmentKindEvaluation
	BigInt     string       // SegmentKindBigIntLiteral, decimal digits, optionally signed
	Hex        string       // SegmentKindHexLiteral, without the 0x prefix
	UTF8       string       // SegmentKindUTF8Literal
	Comment    string       // SegmentKindComment
}

// BytecodeKind discriminates the Bytecode subvariant of a ResolvedSegment.
type BytecodeKind uint8

const (
	BytecodeKindLiteral BytecodeKind = iota + 1
	BytecodeKindOpcode
	BytecodeKindVariable
	BytecodeKindScript
)

// LiteralKind discriminates which literal form produced a BytecodeKindLiteral segment.
type LiteralKind uint8

const (
	LiteralKindBigInt LiteralKind = iota + 1
	LiteralKindHex
	LiteralKindUTF8
)

// ResolvedSegmentKind discriminates the variants of a ResolvedSegment.
type ResolvedSegmentKind uint8

const (
	ResolvedSegmentKindPush ResolvedSegmentKind = iota + 1
	ResolvedSegmentKindEvaluation
	ResolvedSegmentKindBytecode
	ResolvedSegmentKindComment
	ResolvedSegmentKindError
)

// ResolvedSegment is a single node of a ResolvedScript: the parse tree after identifier
// resolution, still carrying ranges, ready for Reduce.
type ResolvedSegment struct {
	Kind  ResolvedSegmentKind
	Range Range

	// ResolvedSegmentKindPush, ResolvedSegmentKindEvaluation
	Value ResolvedScript

	// ResolvedSegmentKindBytecode
	BytecodeKind BytecodeKind
	LiteralKind  LiteralKind // set when BytecodeKind == BytecodeKindLiteral
	Opcode       string      // set when BytecodeKind == BytecodeKindOpcode
	Variable     string      // set when BytecodeKind == BytecodeKindVariable
	Script       string      // set when BytecodeKind == BytecodeKindScript
	Source       ResolvedScript // nested resolved tree, set when BytecodeKind == BytecodeKindScript
	Bytes        []byte

	// ResolvedSegmentKindComment
	CommentValue string

	// ResolvedSegmentKindError
	ErrorValue string
}

// ResolvedScript is an ordered sequence of resolved segments. An empty parse tree resolves
// to a single Comment("") node so downstream reducers always see at least one range.
type ResolvedScript []ResolvedSegment
