// Package media tracks the named, file-backed media of one script session.
package media

// Entry maps a friendly name to a working file inside the session directory.
type Entry struct {
	Name string
	File string
}

// Registry is an ordered list of media entries. Names are not unique:
// lookups return the first entry with a matching name, so later duplicates
// stay registered but cannot be reached by name.
//
// A Registry belongs to a single session and is not safe for concurrent use.
type Registry struct {
	entries []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Lookup returns the file of the first entry named name.
func (r *Registry) Lookup(name string) (string, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.File, true
		}
	}
	return "", false
}

// Append adds an entry at the end, without deduplicating.
func (r *Registry) Append(e Entry) {
	r.entries = append(r.entries, e)
}

// ReplaceFile points the first entry named name at file. Unknown names are
// ignored; callers validate with Lookup first.
func (r *Registry) ReplaceFile(name, file string) {
	for i := range r.entries {
		if r.entries[i].Name == name {
			r.entries[i].File = file
			return
		}
	}
}

// First returns the earliest registered entry.
func (r *Registry) First() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[0], true
}

// Entries returns a copy of all entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
