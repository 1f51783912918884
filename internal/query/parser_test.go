package query

import "testing"

func TestParseSingleTerm(t *testing.T) {
	node, err := Parse("cat")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeTerm || node.Term != "cat" {
		t.Fatalf("got %+v", node)
	}
}

func TestParseAndFlattensNAry(t *testing.T) {
	node, err := Parse("cat AND dog AND fish")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeAnd || len(node.Children) != 3 {
		t.Fatalf("got %+v", node)
	}
}

func TestParseOrFlattensNAry(t *testing.T) {
	node, err := Parse("cat OR dog OR fish")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeOr || len(node.Children) != 3 {
		t.Fatalf("got %+v", node)
	}
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	node, err := Parse("cat OR dog AND fish")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeOr || len(node.Children) != 2 {
		t.Fatalf("expected top-level OR with 2 children, got %+v", node)
	}
	if node.Children[0].Type != NodeTerm || node.Children[0].Term != "cat" {
		t.Fatalf("expected first OR child to be term cat, got %+v", node.Children[0])
	}
	and := node.Children[1]
	if and.Type != NodeAnd || len(and.Children) != 2 {
		t.Fatalf("expected second OR child to be AND(dog,fish), got %+v", and)
	}
}

func TestParseNotBindsToSingleUnary(t *testing.T) {
	node, err := Parse("NOT cat AND dog")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeAnd || len(node.Children) != 2 {
		t.Fatalf("got %+v", node)
	}
	if node.Children[0].Type != NodeNot || node.Children[0].Child.Term != "cat" {
		t.Fatalf("expected NOT(cat) as first AND operand, got %+v", node.Children[0])
	}
}

func TestParseDoubleNegation(t *testing.T) {
	node, err := Parse("NOT NOT cat")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeNot || node.Child.Type != NodeNot || node.Child.Child.Term != "cat" {
		t.Fatalf("got %+v", node)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	node, err := Parse("(cat OR dog) AND fish")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Type != NodeAnd || len(node.Children) != 2 {
		t.Fatalf("got %+v", node)
	}
	if node.Children[0].Type != NodeOr {
		t.Fatalf("expected first AND operand to be an OR, got %+v", node.Children[0])
	}
}

func TestParseUnclosedParenIsSyntaxError(t *testing.T) {
	_, err := Parse("(cat AND dog")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if err.Kind.String() != "Syntax" {
		t.Fatalf("got kind %v", err.Kind)
	}
}

func TestParseDanglingOperatorIsSyntaxError(t *testing.T) {
	_, err := Parse("cat AND")
	if err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestParseEmptyQueryIsSyntaxError(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse("cat AND )")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	want := "Syntax error at (1, 9)"
	if err.Message != want {
		t.Fatalf("got %q, want %q", err.Message, want)
	}
}

func TestParseTrailingGarbageIsSyntaxError(t *testing.T) {
	_, err := Parse("cat dog")
	if err == nil {
		t.Fatal("expected syntax error for two adjacent terms with no operator")
	}
}
