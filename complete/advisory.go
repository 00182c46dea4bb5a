package complete

import "sync/atomic"

// Advisory footers shown below the completion list. Purely cosmetic: no
// consumer parses these.
var advisories = []string{
	"✿ relative paths resolve from the root document",
	"✿ a trailing dot descends into the current directory",
	"✿ declared graphics paths are searched after source roots",
	"✿ comma-separated parameters complete one entry at a time",
	"✿ .. climbs one directory, however deep you are",
}

var advisoryCursor atomic.Uint32

// nextAdvisory rotates through the advisory messages, one per request.
func nextAdvisory() string {
	n := advisoryCursor.Add(1) - 1
	return advisories[int(n)%len(advisories)]
}
