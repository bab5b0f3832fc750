package template

import (
	"testing"

	"github.com/go-test/deep"
)

func TestParseIdentifier(t *testing.T) {
	segments, err := Parse("key1.schnorr_signature.all_outputs")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != SegmentKindIdentifier {
		t.Fatalf("expected identifier segment, got %v", segments[0].Kind)
	}
	if segments[0].Identifier != "key1.schnorr_signature.all_outputs" {
		t.Fatalf("wrong identifier : %s", segments[0].Identifier)
	}
}

func TestParsePush(t *testing.T) {
	segments, err := Parse("<key1.public_key>")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != SegmentKindPush {
		t.Fatalf("expected push segment, got %v", segments[0].Kind)
	}
	if len(segments[0].Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(segments[0].Children))
	}
}

func TestParseEvaluation(t *testing.T) {
	segments, err := Parse("OP_DUP $(<1> OP_ADD)")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Kind != SegmentKindEvaluation {
		t.Fatalf("expected evaluation segment, got %v", segments[1].Kind)
	}
	if len(segments[1].Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(segments[1].Children))
	}
}

func TestParseEmptyPushBecomesComment(t *testing.T) {
	segments, err := Parse("<>")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 || segments[0].Kind != SegmentKindPush {
		t.Fatalf("expected single push segment, got %+v", segments)
	}
	if len(segments[0].Children) != 1 || segments[0].Children[0].Kind != SegmentKindComment {
		t.Fatalf("expected empty push body to collapse to a comment, got %+v", segments[0].Children)
	}
}

func TestParseHexLiteral(t *testing.T) {
	segments, err := Parse("0xdeadbeef")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 || segments[0].Kind != SegmentKindHexLiteral {
		t.Fatalf("expected hex literal segment, got %+v", segments)
	}
	if segments[0].Hex != "deadbeef" {
		t.Fatalf("wrong hex value : %s", segments[0].Hex)
	}
}

func TestParseUTF8Literal(t *testing.T) {
	segments, err := Parse(`'hello'`)
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 || segments[0].Kind != SegmentKindUTF8Literal {
		t.Fatalf("expected utf8 literal segment, got %+v", segments)
	}
	if segments[0].UTF8 != "hello" {
		t.Fatalf("wrong utf8 value : %s", segments[0].UTF8)
	}
}

func TestParseComments(t *testing.T) {
	segments, err := Parse("OP_DUP // trailing\nOP_EQUAL /* block */ OP_VERIFY")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}

	var kinds []SegmentKind
	for _, s := range segments {
		kinds = append(kinds, s.Kind)
	}

	expected := []SegmentKind{
		SegmentKindIdentifier, SegmentKindComment, SegmentKindIdentifier,
		SegmentKindComment, SegmentKindIdentifier,
	}
	if diff := deep.Equal(kinds, expected); diff != nil {
		t.Fatalf("segment kinds differ : %v", diff)
	}
}

func TestParseNegativeNumber(t *testing.T) {
	segments, err := Parse("-12345")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if len(segments) != 1 || segments[0].Kind != SegmentKindBigIntLiteral {
		t.Fatalf("expected big int literal segment, got %+v", segments)
	}
	if segments[0].BigInt != "-12345" {
		t.Fatalf("wrong value : %s", segments[0].BigInt)
	}
}

func TestParseUnmatchedPushIsError(t *testing.T) {
	if _, err := Parse("<OP_DUP"); err == nil {
		t.Fatalf("expected an error for an unterminated push")
	}
}
