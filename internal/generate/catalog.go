package generate

import "sort"

// Harness selects the template prelude a structure needs.
const (
	HarnessCDS    = "cds"
	HarnessCRange = "crange"
)

// Action is one operation in a structure's repertoire: a C++ statement
// snippet with {key}/{value} placeholders, instantiated at generation time.
type Action struct {
	Name string
	Code string
}

// Structure is one catalog entry: a container type and the actions the
// generated threads may perform on it. Type may contain a {GC} placeholder
// for the garbage-collection scheme.
type Structure struct {
	Key     string
	Type    string
	Harness string
	Actions []Action
}

var stackActions = []Action{
	{"pop", "int x; return ds->pop(x) ? x : -1;"},
	{"push", "ds->push({value}); return 0;"},
	{"empty", "return ds->empty();"},
}

var queueActions = []Action{
	{"dequeue", "int x; return ds->dequeue(x) ? x : -1;"},
	{"enqueue", "ds->enqueue({value}); return 0;"},
	{"empty", "return ds->empty();"},
}

var setActions = []Action{
	{"find", "return ds->find({key});"},
	{"insert", "ds->insert({key}); return 0;"},
	{"erase", "return ds->erase({key});"},
	{"empty", "return ds->empty();"},
}

// boost::lockfree::fifo takes a pointer on dequeue.
var boostActions = []Action{
	{"dequeue", "int x; return ds->dequeue(&x) ? x : -1;"},
	{"enqueue", "ds->enqueue({value}); return 0;"},
	{"empty", "return ds->empty();"},
}

var crangeActions = []Action{
	{"insert", "ds->add({key}, 1, (void*) 1); return 0;"},
	{"erase", "ds->del({key}, 1); return 0;"},
	{"find", "return ds->search({key}, 1, 0) != nullptr ? 1 : 0;"},
}

var catalog = map[string]Structure{
	"cds_treiberstack": {
		Key: "cds_treiberstack", Type: "cds::container::TreiberStack<{GC}, int>",
		Harness: HarnessCDS, Actions: stackActions,
	},
	"cds_rwqueue": {
		Key: "cds_rwqueue", Type: "cds::container::RWQueue<int>",
		Harness: HarnessCDS, Actions: queueActions,
	},
	"cds_basketqueue": {
		Key: "cds_basketqueue", Type: "cds::container::BasketQueue<{GC}, int>",
		Harness: HarnessCDS, Actions: queueActions,
	},
	"cds_msqueue": {
		Key: "cds_msqueue", Type: "cds::container::MSQueue<{GC}, int>",
		Harness: HarnessCDS, Actions: queueActions,
	},
	"cds_optimisticqueue": {
		Key: "cds_optimisticqueue", Type: "cds::container::OptimisticQueue<{GC}, int>",
		Harness: HarnessCDS, Actions: queueActions,
	},
	"cds_moirqueue": {
		Key: "cds_moirqueue", Type: "cds::container::MoirQueue<{GC}, int>",
		Harness: HarnessCDS, Actions: queueActions,
	},
	"cds_lazylist": {
		Key: "cds_lazylist", Type: "cds::container::LazyList<{GC}, int>",
		Harness: HarnessCDS, Actions: setActions,
	},
	"cds_skiplistset": {
		Key: "cds_skiplistset", Type: "cds::container::SkipListSet<{GC}, int>",
		Harness: HarnessCDS, Actions: setActions,
	},
	"boost_fifo": {
		Key: "boost_fifo", Type: "boost::lockfree::fifo<int>",
		Harness: HarnessCDS, Actions: boostActions,
	},
	"crange": {
		Key: "crange", Type: "crange",
		Harness: HarnessCRange, Actions: crangeActions,
	},
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Structure, bool) {
	s, ok := catalog[key]
	return s, ok
}

// Keys lists the catalog keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Structure) action(name string) (Action, bool) {
	for _, a := range s.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}
