package store

import "sort"

// Document maps service to item to value.
type Document map[string]map[string]string

// Lookup returns the value at (service, item).
func (d Document) Lookup(service, item string) (string, bool) {
	items, ok := d[service]
	if !ok {
		return "", false
	}
	value, ok := items[item]
	return value, ok
}

// Entries flattens the document, sorted by service then item.
func (d Document) Entries() []Entry {
	services := make([]string, 0, len(d))
	for service := range d {
		services = append(services, service)
	}
	sort.Strings(services)

	entries := make([]Entry, 0, len(d))
	for _, service := range services {
		items := make([]string, 0, len(d[service]))
		for item := range d[service] {
			items = append(items, item)
		}
		sort.Strings(items)
		for _, item := range items {
			entries = append(entries, Entry{Service: service, Item: item, Value: d[service][item]})
		}
	}
	return entries
}

// LoadStatus says how Load obtained its document.
type LoadStatus int

const (
	// LoadOK means the file was parsed.
	LoadOK LoadStatus = iota
	// LoadMissing means there was no file; the document is empty.
	LoadMissing
	// LoadCorrupted means the file was not a JSON object; the document is empty.
	LoadCorrupted
	// LoadUnreadable means the file could not be read; the document is empty.
	LoadUnreadable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupted:
		return "corrupted"
	case LoadUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load. Doc is never nil; Err is set for
// LoadCorrupted and LoadUnreadable.
type LoadResult struct {
	Doc    Document
	Status LoadStatus
	Err    error
}

// Degraded reports whether the file existed but could not be used.
func (r LoadResult) Degraded() bool {
	return r.Status == LoadCorrupted || r.Status == LoadUnreadable
}
