package message

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// DatastoreKind enumerates the datastore forms of <source> and <target>.
type DatastoreKind int

const (
	Running DatastoreKind = iota
	Candidate
	Startup
	URL
)

var datastoreNames = [...]string{
	Running:   "running",
	Candidate: "candidate",
	Startup:   "startup",
	URL:       "url",
}

func (k DatastoreKind) String() string {
	if k >= 0 && int(k) < len(datastoreNames) {
		return datastoreNames[k]
	}
	return fmt.Sprintf("DatastoreKind(%d)", int(k))
}

// Datastore names a configuration datastore. URL is only set for the
// URL kind.
type Datastore struct {
	Kind DatastoreKind
	URL  string
}

func RunningDatastore() Datastore       { return Datastore{Kind: Running} }
func CandidateDatastore() Datastore     { return Datastore{Kind: Candidate} }
func StartupDatastore() Datastore       { return Datastore{Kind: Startup} }
func URLDatastore(url string) Datastore { return Datastore{Kind: URL, URL: url} }

// String returns the datastore element name, or "url:" followed by
// the URL for URL datastores.
func (d Datastore) String() string {
	if d.Kind == URL {
		return "url:" + d.URL
	}
	return d.Kind.String()
}

func (d Datastore) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Datastore) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if url, ok := strings.CutPrefix(s, "url:"); ok {
		*d = URLDatastore(url)
		return nil
	}
	k, ok := datastoreKind(s)
	if !ok || k == URL {
		return errors.New("unknown value")
	}
	*d = Datastore{Kind: k}
	return nil
}

func datastoreKind(name string) (DatastoreKind, bool) {
	for i, n := range datastoreNames {
		if n == name {
			return DatastoreKind(i), true
		}
	}
	return 0, false
}
