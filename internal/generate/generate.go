// Package generate renders randomized concurrent test programs that
// exercise a catalog of lock-free containers. The output is C++ source
// for the linearizability harness; racelens never compiles or runs it.
package generate

import (
	"fmt"
	"math/rand"
	"strings"
	"text/template"
)

// Values substituted for the snippet placeholders. Keys is a single value
// so every thread contends on the same element.
var (
	keyChoices = []int{1}
	gcScheme   = "cds::gc::HP"
	maxValue   = 100000
)

// Generator produces test programs. Deterministic for a given seed.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// RandomCase generates a program with numThreads threads each performing
// numActions actions drawn uniformly from the structure's repertoire.
func (g *Generator) RandomCase(key string, numThreads, numActions int) (string, error) {
	s, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown data structure %q", key)
	}

	threads := make([][]string, numThreads)
	for i := range threads {
		steps := make([]string, numActions)
		for j := range steps {
			steps[j] = g.instantiate(s.Actions[g.rng.Intn(len(s.Actions))].Code)
		}
		threads[i] = steps
	}

	return render(s, threads, g.instantiate(s.Type))
}

// GeneralCase generates one single-action thread per (repetition, action)
// pair, covering the whole repertoire repeat times.
func (g *Generator) GeneralCase(key string, repeat int) (string, error) {
	s, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown data structure %q", key)
	}

	var threads [][]string
	for i := 0; i < repeat; i++ {
		for _, a := range s.Actions {
			threads = append(threads, []string{g.instantiate(a.Code)})
		}
	}

	return render(s, threads, g.instantiate(s.Type))
}

// SpecificCase generates a program with an explicit per-thread action
// list, given by action name.
func (g *Generator) SpecificCase(key string, actions [][]string) (string, error) {
	s, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown data structure %q", key)
	}

	threads := make([][]string, len(actions))
	for i, names := range actions {
		steps := make([]string, len(names))
		for j, name := range names {
			a, ok := s.action(name)
			if !ok {
				return "", fmt.Errorf("structure %q has no action %q", key, name)
			}
			steps[j] = g.instantiate(a.Code)
		}
		threads[i] = steps
	}

	return render(s, threads, g.instantiate(s.Type))
}

func (g *Generator) instantiate(line string) string {
	if strings.Contains(line, "{key}") {
		k := keyChoices[g.rng.Intn(len(keyChoices))]
		line = strings.ReplaceAll(line, "{key}", fmt.Sprintf("%d", k))
	}
	if strings.Contains(line, "{value}") {
		line = strings.ReplaceAll(line, "{value}", fmt.Sprintf("%d", g.rng.Intn(maxValue+1)))
	}
	line = strings.ReplaceAll(line, "{GC}", gcScheme)
	return line
}

type templateData struct {
	Type       string
	Threads    [][]string
	NumThreads int
	CRange     bool
}

func render(s Structure, threads [][]string, dsType string) (string, error) {
	var buf strings.Builder
	err := programTemplate.Execute(&buf, templateData{
		Type:       dsType,
		Threads:    threads,
		NumThreads: len(threads),
		CRange:     s.Harness == HarnessCRange,
	})
	if err != nil {
		return "", fmt.Errorf("rendering test program: %w", err)
	}
	return buf.String(), nil
}

var programTemplate = template.Must(template.New("program").Funcs(template.FuncMap{
	"quote": func(s string) string {
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(s) + `"`
	},
}).Parse(`{{- if .CRange -}}
#include "helper.h"
#include "linearizability.h"
#include "../tests/test-crange.cc"
{{- else -}}
#include "helper.h"
#include "linearizability.h"

#include <cds/container/treiber_stack.h>
#include <cds/container/basket_queue.h>
#include <cds/container/moir_queue.h>
#include <cds/container/msqueue.h>
#include <cds/container/optimistic_queue.h>
#include <cds/container/rwqueue.h>
#include <cds/container/vyukov_mpmc_cycle_queue.h>
#include <cds/container/lazy_list_hp.h>
#include <cds/container/skip_list_set_hp.h>
#include <boost/lockfree/fifo.hpp>

#include <cds/init.h>
#include <cds/gc/hp.h>

cds::gc::HP *hpHolder;
cds::gc::HP::thread_gc *gcHolder;

ThreadLocalStorage<cds::threading::ThreadData*> cdsTLS;

namespace cds {
  CDS_ATOMIC::atomic<size_t> threading::ThreadData::s_nLastUsedProcNo(0);
  size_t threading::ThreadData::s_nProcCount = 1;

  namespace details {
    bool init_first_call() {
      return true;
    }

    bool fini_last_call() {
      return true;
    }
  }
}
{{- end}}
Linearizability linearizability({{.NumThreads}});
{{.Type}}* ds;

void Create() {
{{- if .CRange}}
  seed_tls.Reset();
  ds = new crange(8);
{{- else}}
  ds = new {{.Type}}();
{{- end}}
}

void Destroy() {
  delete ds;
}

struct Configure {
  Configure() {
    linearizability.RegisterImplementation(&Create, &Destroy);
    linearizability.RegisterModel(&Create, &Destroy);
{{- range $i, $steps := .Threads}}
{{- range $steps}}
    linearizability.AddStep({{$i}}, []() { {{.}} }, {{quote .}});
{{- end}}
{{- end}}
  }
};

static Configure config;

volatile int x;
void ThreadBody(int i) {
{{- if not .CRange}}
  cds::gc::HP::thread_gc gc;
{{- end}}
  linearizability.ThreadBody(i);
  int y = x;
}

void Setup() {
{{- if not .CRange}}
  cds::Initialize();
  hpHolder = new cds::gc::HP();
  gcHolder = new cds::gc::HP::thread_gc();
{{- end}}
  linearizability.Setup();

  for (int i = 0; i < {{.NumThreads}}; i++) {
    StartThread(ThreadBody, i);
  }
}

void Finish() {
  linearizability.Finish();
{{- if not .CRange}}
  delete gcHolder;
  delete hpHolder;
  cds::Terminate();
{{- end}}
}
`))
