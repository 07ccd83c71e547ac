package example

import "testing"

func TestBuild_ReturnsPopulatedTablesWithoutError(t *testing.T) {
	tab, entities, intSymbols, err := Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Len() == 0 {
		t.Fatal("expected at least one registered symbol")
	}
	if len(entities) == 0 {
		t.Fatal("expected at least one entity entry")
	}
	if len(intSymbols) == 0 {
		t.Fatal("expected at least one int-symbol entry")
	}
}
