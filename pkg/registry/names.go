package registry

// Names is the registry's global name table: an insertion-ordered set of
// strings whose positions are the NameIndex space.
//
// The zero value is an empty table ready for use. Names is not safe for
// concurrent mutation.
type Names struct {
	list  []string
	index map[string]NameIndex
}

// NewNames builds a table holding names in order. A repeated string keeps
// its position (so decoded indices stay valid) but lookups by value resolve
// to its first occurrence.
func NewNames(names ...string) *Names {
	n := &Names{
		list:  make([]string, 0, len(names)),
		index: make(map[string]NameIndex, len(names)),
	}
	for _, s := range names {
		n.push(s)
	}
	return n
}

func (n *Names) push(s string) NameIndex {
	if n.index == nil {
		n.index = make(map[string]NameIndex)
	}
	i := NameIndex(len(n.list))
	n.list = append(n.list, s)
	if _, dup := n.index[s]; !dup {
		n.index[s] = i
	}
	return i
}

// Len returns the number of entries.
func (n *Names) Len() int { return len(n.list) }

// Intern returns the index of s, appending it when absent.
func (n *Names) Intern(s string) NameIndex {
	if i, ok := n.index[s]; ok {
		return i
	}
	return n.push(s)
}

// IndexOf returns the index of s without modifying the table.
func (n *Names) IndexOf(s string) (NameIndex, bool) {
	i, ok := n.index[s]
	return i, ok
}

// Lookup returns the string at i.
func (n *Names) Lookup(i NameIndex) (string, bool) {
	if uint64(i) >= uint64(len(n.list)) {
		return "", false
	}
	return n.list[i], true
}

// LookupFlagged returns the string a flagged index points at. The instance
// number does not take part in the lookup.
func (n *Names) LookupFlagged(f NameIndexFlagged) (string, bool) {
	return n.Lookup(NameIndex(f.Index))
}

// Strings returns the entries in index order. The slice is shared with the
// table and must not be modified.
func (n *Names) Strings() []string { return n.list }
