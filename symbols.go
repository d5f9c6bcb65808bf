package symcanon

import "github.com/google/btree"

// ============================================================
// Variable table
// ============================================================

type symbolEntry struct {
	name string
	sym  *Sym
}

func lessSymbols(a, b symbolEntry) bool { return a.name < b.name }

// SymbolTable maps variable names to their symbols. Iteration is in
// ascending name order regardless of insertion order. The zero value is an
// empty table ready for use, and a nil table reads as empty.
type SymbolTable struct {
	tree *btree.BTreeG[symbolEntry]
}

// NewSymbolTable returns a table holding one symbol per distinct name.
func NewSymbolTable(names ...string) *SymbolTable {
	t := &SymbolTable{}
	for _, n := range names {
		t.Add(n)
	}
	return t
}

// Add declares name and returns its symbol. Declaring a name twice returns
// the existing symbol. On a nil table Add returns a fresh symbol without
// recording it.
func (t *SymbolTable) Add(name string) *Sym {
	if s, ok := t.Lookup(name); ok {
		return s
	}
	s := S(name)
	if t == nil {
		return s
	}
	if t.tree == nil {
		t.tree = btree.NewG[symbolEntry](8, lessSymbols)
	}
	t.tree.ReplaceOrInsert(symbolEntry{name: name, sym: s})
	return s
}

func (t *SymbolTable) Lookup(name string) (*Sym, bool) {
	if t == nil || t.tree == nil {
		return nil, false
	}
	e, ok := t.tree.Get(symbolEntry{name: name})
	return e.sym, ok
}

func (t *SymbolTable) Names() []string {
	if t == nil || t.tree == nil {
		return nil
	}
	names := make([]string, 0, t.tree.Len())
	t.tree.Ascend(func(e symbolEntry) bool {
		names = append(names, e.name)
		return true
	})
	return names
}

func (t *SymbolTable) Len() int {
	if t == nil || t.tree == nil {
		return 0
	}
	return t.tree.Len()
}
