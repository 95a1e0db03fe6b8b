package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LookupFirstMatch(t *testing.T) {
	r := NewRegistry()
	r.Append(Entry{Name: "clip", File: "/tmp/a.mp4"})
	r.Append(Entry{Name: "other", File: "/tmp/b.mp4"})
	r.Append(Entry{Name: "clip", File: "/tmp/c.mp4"})

	file, ok := r.Lookup("clip")
	require.True(t, ok)
	assert.Equal(t, "/tmp/a.mp4", file)
	assert.Equal(t, 3, r.Len(), "duplicates are kept")

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_ReplaceFile(t *testing.T) {
	r := NewRegistry()
	r.Append(Entry{Name: "clip", File: "/tmp/a.mp4"})
	r.Append(Entry{Name: "clip", File: "/tmp/c.mp4"})

	r.ReplaceFile("clip", "/tmp/a.wav")

	entries := r.Entries()
	assert.Equal(t, []Entry{
		{Name: "clip", File: "/tmp/a.wav"},
		{Name: "clip", File: "/tmp/c.mp4"},
	}, entries)

	r.ReplaceFile("missing", "/tmp/x")
	assert.Equal(t, entries, r.Entries(), "unknown names are a silent no-op")
}

func TestRegistry_First(t *testing.T) {
	r := NewRegistry()
	_, ok := r.First()
	assert.False(t, ok)

	r.Append(Entry{Name: "one", File: "/tmp/1"})
	r.Append(Entry{Name: "two", File: "/tmp/2"})

	first, ok := r.First()
	require.True(t, ok)
	assert.Equal(t, "one", first.Name)
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Append(Entry{Name: "one", File: "/tmp/1"})

	entries := r.Entries()
	entries[0].Name = "changed"

	_, ok := r.Lookup("one")
	assert.True(t, ok)
}
