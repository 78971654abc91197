package generate

import (
	"strings"
	"testing"
)

func TestRandomCaseDeterministic(t *testing.T) {
	a, err := New(42).RandomCase("cds_msqueue", 3, 3)
	if err != nil {
		t.Fatalf("RandomCase failed: %v", err)
	}
	b, err := New(42).RandomCase("cds_msqueue", 3, 3)
	if err != nil {
		t.Fatalf("RandomCase failed: %v", err)
	}
	if a != b {
		t.Error("same seed produced different programs")
	}

	c, err := New(43).RandomCase("cds_msqueue", 3, 3)
	if err != nil {
		t.Fatalf("RandomCase failed: %v", err)
	}
	if a == c {
		t.Error("different seeds produced identical programs")
	}
}

func TestRandomCaseShape(t *testing.T) {
	program, err := New(7).RandomCase("cds_treiberstack", 4, 2)
	if err != nil {
		t.Fatalf("RandomCase failed: %v", err)
	}

	if !strings.Contains(program, "Linearizability linearizability(4);") {
		t.Error("thread count not rendered")
	}
	if got := strings.Count(program, "linearizability.AddStep("); got != 8 {
		t.Errorf("got %d steps, want 8", got)
	}
	if !strings.Contains(program, "cds::container::TreiberStack<cds::gc::HP, int>* ds;") {
		t.Error("GC placeholder not instantiated")
	}
	if strings.Contains(program, "{value}") || strings.Contains(program, "{key}") {
		t.Error("placeholders leaked into output")
	}
	if !strings.Contains(program, "cds::Initialize();") {
		t.Error("cds harness prelude missing")
	}
}

func TestGeneralCase(t *testing.T) {
	program, err := New(1).GeneralCase("cds_lazylist", 2)
	if err != nil {
		t.Fatalf("GeneralCase failed: %v", err)
	}

	// One single-action thread per (repetition, action) pair.
	s, _ := Lookup("cds_lazylist")
	wantThreads := 2 * len(s.Actions)
	if !strings.Contains(program, "StartThread(ThreadBody, i)") {
		t.Error("thread start loop missing")
	}
	if got := strings.Count(program, "linearizability.AddStep("); got != wantThreads {
		t.Errorf("got %d steps, want %d", got, wantThreads)
	}
}

func TestSpecificCase(t *testing.T) {
	program, err := New(1).SpecificCase("boost_fifo", [][]string{
		{"enqueue"}, {"dequeue"}, {"enqueue", "empty"},
	})
	if err != nil {
		t.Fatalf("SpecificCase failed: %v", err)
	}

	if !strings.Contains(program, "boost::lockfree::fifo<int>* ds;") {
		t.Error("structure type not rendered")
	}
	if !strings.Contains(program, "int x; return ds->dequeue(&x) ? x : -1;") {
		t.Error("boost dequeue snippet missing")
	}
	if !strings.Contains(program, `linearizability.AddStep(2, []() { return ds->empty(); }, "return ds->empty();");`) {
		t.Error("empty step not attributed to thread 2")
	}
}

func TestSpecificCaseUnknownAction(t *testing.T) {
	_, err := New(1).SpecificCase("cds_msqueue", [][]string{{"push"}})
	if err == nil {
		t.Error("expected error for action not in repertoire")
	}
}

func TestUnknownStructure(t *testing.T) {
	if _, err := New(1).RandomCase("cds_vyukovqueue", 2, 2); err == nil {
		t.Error("expected error for unknown structure")
	}
}

func TestCRangeHarness(t *testing.T) {
	program, err := New(9).RandomCase("crange", 3, 3)
	if err != nil {
		t.Fatalf("RandomCase failed: %v", err)
	}

	if !strings.Contains(program, `#include "../tests/test-crange.cc"`) {
		t.Error("crange harness include missing")
	}
	if !strings.Contains(program, "seed_tls.Reset();") {
		t.Error("crange create body missing")
	}
	if strings.Contains(program, "cds::Initialize();") {
		t.Error("crange program got the cds prelude")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 10 {
		t.Errorf("catalog has %d structures, want 10", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Error("keys not sorted")
		}
	}
}
