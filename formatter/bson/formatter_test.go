package bson

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arclabs561/qexpr"
)

func exampleTree() qexpr.Expr {
	return qexpr.NewAnd(
		qexpr.NewTerm("alpha"),
		qexpr.NewPhrase(qexpr.NewTerm("new"), qexpr.NewTerm("york")),
		qexpr.NewNear([]qexpr.Term{qexpr.NewTerm("deep"), qexpr.NewTerm("learning")}, 5, false),
		qexpr.NewOr(
			qexpr.NewNot(qexpr.NewTerm("beta")),
			qexpr.NewField("title", qexpr.NewTerm("go")),
		),
	)
}

// TestFormatVariantTags tests the externally tagged document layout for each
// variant.
func TestFormatVariantTags(t *testing.T) {
	formatter := New()

	tests := []struct {
		name string
		expr qexpr.Expr
		tag  string
	}{
		{name: "term", expr: qexpr.NewTerm("alpha"), tag: "term"},
		{name: "phrase", expr: qexpr.NewPhrase(qexpr.NewTerm("a")), tag: "phrase"},
		{name: "near", expr: qexpr.NewNear([]qexpr.Term{qexpr.NewTerm("a"), qexpr.NewTerm("b")}, 1, true), tag: "near"},
		{name: "and", expr: qexpr.NewAnd(qexpr.NewTerm("a")), tag: "and"},
		{name: "or", expr: qexpr.NewOr(qexpr.NewTerm("a")), tag: "or"},
		{name: "not", expr: qexpr.NewNot(qexpr.NewTerm("a")), tag: "not"},
		{name: "field", expr: qexpr.NewField("title", qexpr.NewTerm("a")), tag: "field"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := formatter.Format(test.expr)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			if len(doc) != 1 {
				t.Fatalf("Expected a single-key document, got %d keys", len(doc))
			}
			if _, ok := doc[test.tag]; !ok {
				t.Errorf("Expected variant tag %q, got %v", test.tag, doc)
			}
		})
	}
}

// TestFormatTermPayload tests the exact document shape of a term.
func TestFormatTermPayload(t *testing.T) {
	doc, err := Encode(qexpr.NewTerm("alpha"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if text, ok := doc["term"].(string); !ok || text != "alpha" {
		t.Errorf("Expected {\"term\": \"alpha\"}, got %v", doc)
	}
}

// TestFormatNearShape tests the near sub-document: terms, slop, and the
// ordered flag.
func TestFormatNearShape(t *testing.T) {
	near := qexpr.NewNear([]qexpr.Term{qexpr.NewTerm("deep"), qexpr.NewTerm("learning")}, 5, true)
	doc, err := Encode(near)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	inner, ok := doc["near"].(bson.M)
	if !ok {
		t.Fatalf("Expected a near sub-document, got %T", doc["near"])
	}
	if slop, ok := inner["slop"].(int64); !ok || slop != 5 {
		t.Errorf("Expected slop 5, got %v", inner["slop"])
	}
	if ordered, ok := inner["ordered"].(bool); !ok || !ordered {
		t.Errorf("Expected ordered true, got %v", inner["ordered"])
	}
	terms, ok := inner["terms"].(bson.A)
	if !ok || len(terms) != 2 || terms[0] != "deep" || terms[1] != "learning" {
		t.Errorf("Expected terms [deep learning], got %v", inner["terms"])
	}
}

// TestDecodeRoundTrip tests that Decode inverts Encode up to structural
// equality for a composed tree.
func TestDecodeRoundTrip(t *testing.T) {
	tree := exampleTree()

	doc, err := Encode(tree)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !qexpr.Equal(tree, back) {
		t.Errorf("Expected round-trip to preserve structure, got %v", back)
	}
}

// TestMarshalRoundTrip tests the byte-level round trip through the driver's
// BSON marshaling.
func TestMarshalRoundTrip(t *testing.T) {
	tree := exampleTree()

	data, err := Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !qexpr.Equal(tree, back) {
		t.Errorf("Expected byte round-trip to preserve structure, got %v", back)
	}
}

// TestMarshalPreservesLargeSlop tests that slop bounds beyond int32 range
// survive the byte round trip without wrapping.
func TestMarshalPreservesLargeSlop(t *testing.T) {
	slop := 1<<32 + 5
	tree := qexpr.NewNear([]qexpr.Term{qexpr.NewTerm("deep"), qexpr.NewTerm("learning")}, slop, false)

	data, err := Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	near, ok := back.(qexpr.Near)
	if !ok {
		t.Fatalf("Expected a Near node, got %T", back)
	}
	if near.Slop != slop {
		t.Errorf("Expected slop %d to survive the round trip, got %d", slop, near.Slop)
	}
	if !qexpr.Equal(tree, back) {
		t.Errorf("Expected round-trip to preserve structure, got %v", back)
	}
}

// TestCodecRoundTrip tests the Codec surface used by the registry.
func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec()
	tree := exampleTree()

	data, err := codec.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !qexpr.Equal(tree, back) {
		t.Errorf("Expected codec round-trip to preserve structure, got %v", back)
	}
}

// TestEncodeDoesNotValidate tests that the encoder is shape-preserving: a
// tree that fails validation still encodes, and the decoded copy fails
// validation the same way on the receiving side.
func TestEncodeDoesNotValidate(t *testing.T) {
	invalid := qexpr.NewAnd(qexpr.NewNear([]qexpr.Term{qexpr.NewTerm("solo")}, 5, false))

	data, err := Marshal(invalid)
	if err != nil {
		t.Fatalf("Expected an invalid tree to encode, got %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Expected an invalid tree to decode, got %v", err)
	}

	sent := qexpr.Validate(invalid)
	received := qexpr.Validate(back)
	if sent == nil || received == nil || sent.Error() != received.Error() {
		t.Errorf("Expected both peers to see the same verdict, sender %v receiver %v", sent, received)
	}
}

// TestEncodeNilExpression tests that nil nodes are rejected with an error
// rather than producing a partial document.
func TestEncodeNilExpression(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Error("Expected encoding a nil expression to fail")
	}
	if _, err := Encode(qexpr.NewNot(nil)); err == nil {
		t.Error("Expected encoding a nil child to fail")
	}
}

// TestDecodeErrors tests shape checks on malformed interchange documents.
func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       bson.M
		errorText string
	}{
		{
			name:      "unknown tag",
			doc:       bson.M{"regex": "a.*"},
			errorText: "unknown variant tag",
		},
		{
			name:      "multiple keys",
			doc:       bson.M{"term": "a", "phrase": bson.A{}},
			errorText: "single-key",
		},
		{
			name:      "term payload not a string",
			doc:       bson.M{"term": int32(7)},
			errorText: "must be a string",
		},
		{
			name:      "phrase not an array",
			doc:       bson.M{"phrase": "new york"},
			errorText: "expected an array",
		},
		{
			name:      "near missing slop",
			doc:       bson.M{"near": bson.M{"terms": bson.A{"a", "b"}, "ordered": false}},
			errorText: "slop",
		},
		{
			name:      "near ordered not a boolean",
			doc:       bson.M{"near": bson.M{"terms": bson.A{"a", "b"}, "slop": int32(1), "ordered": "yes"}},
			errorText: "ordered",
		},
		{
			name:      "field missing name",
			doc:       bson.M{"field": bson.M{"expr": bson.M{"term": "a"}}},
			errorText: "field name",
		},
		{
			name:      "nested malformed child",
			doc:       bson.M{"and": bson.A{bson.M{"mystery": true}}},
			errorText: "unknown variant tag",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.doc)
			if err == nil {
				t.Fatal("Expected a decode error, got nil")
			}
			if !strings.Contains(err.Error(), test.errorText) {
				t.Errorf("Expected error to contain %q, got %q", test.errorText, err.Error())
			}
		})
	}
}

// TestDecodeAcceptsDriverForms tests that documents and arrays in the
// driver's default unmarshal forms (bson.D, bson.A) decode the same as
// hand-built bson.M documents.
func TestDecodeAcceptsDriverForms(t *testing.T) {
	doc := bson.M{"not": bson.D{{Key: "term", Value: "alpha"}}}
	back, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := qexpr.NewNot(qexpr.NewTerm("alpha"))
	if !qexpr.Equal(want, back) {
		t.Errorf("Expected %v, got %v", want, back)
	}
}
