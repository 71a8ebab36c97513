package pathtemplate

import "testing"

func TestCompileRejectsMissingLeadingSlash(t *testing.T) {
	if _, err := Compile("users/{id}"); err == nil {
		t.Fatal("expected error for template without leading slash")
	}
}

func TestCompileRejectsEmptySegment(t *testing.T) {
	if _, err := Compile("/users//profile"); err == nil {
		t.Fatal("expected error for template with empty segment")
	}
}

func TestCompileRejectsDuplicatePlaceholder(t *testing.T) {
	if _, err := Compile("/users/{id}/posts/{id}"); err == nil {
		t.Fatal("expected error for repeated placeholder name")
	}
}

func TestCompileRejectsMalformedPlaceholder(t *testing.T) {
	if _, err := Compile("/users/{id/profile"); err == nil {
		t.Fatal("expected error for malformed placeholder")
	}
}

func TestMatcherMatchesLiteralCaseInsensitively(t *testing.T) {
	m, err := Compile("/Say-Hello/{first}/{last}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	params, ok := m.Match("/say-hello/Jane/Doe")
	if !ok {
		t.Fatal("expected match")
	}
	if params["first"] != "Jane" || params["last"] != "Doe" {
		t.Fatalf("unexpected params: %#v", params)
	}
}

func TestMatcherRejectsWrongSegmentCount(t *testing.T) {
	m, err := Compile("/users/{id}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if _, ok := m.Match("/users/1/profile"); ok {
		t.Fatal("expected no match for extra segment")
	}
	if _, ok := m.Match("/users"); ok {
		t.Fatal("expected no match for missing segment")
	}
}

func TestMatcherDecodesPercentEncodedSegments(t *testing.T) {
	m, err := Compile("/search/{query}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	params, ok := m.Match("/search/hello%20world")
	if !ok {
		t.Fatal("expected match")
	}
	if params["query"] != "hello world" {
		t.Fatalf("expected decoded value, got %q", params["query"])
	}
}

func TestMatcherRejectsInvalidPercentEncoding(t *testing.T) {
	m, err := Compile("/search/{query}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if _, ok := m.Match("/search/%zz"); ok {
		t.Fatal("expected no match for invalid percent-encoding")
	}
}

func TestStructureKeyIgnoresPlaceholderNamesAndMethod(t *testing.T) {
	a, err := Compile("/users/{id}/posts/{postID}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	b, err := Compile("/users/{userID}/posts/{slug}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if a.StructureKey() != b.StructureKey() {
		t.Fatalf("expected equal structure keys, got %q and %q", a.StructureKey(), b.StructureKey())
	}
}

func TestStructureKeyDiffersOnLiteralSegments(t *testing.T) {
	a, err := Compile("/users/{id}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	b, err := Compile("/posts/{id}")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if a.StructureKey() == b.StructureKey() {
		t.Fatal("expected different structure keys for different literal segments")
	}
}
