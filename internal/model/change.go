package model

import "fmt"

// RecordChange is a watched page whose new record differs from the archived one.
type RecordChange struct {
	Family   GameFamily
	PageID   int
	Previous CanonicalRecord
	Current  CanonicalRecord
	// Changed names what differs: "type", "name", "description", an
	// attribute, or a module name.
	Changed []string
}

// Notifier sends alerts about changed records.
type Notifier interface {
	Notify(changes []RecordChange) error
}

// EntryURL is the public wiki page for an entry.
func EntryURL(family GameFamily, pageID int) string {
	return fmt.Sprintf("https://wiki.hoyolab.com/pc/%s/entry/%d", family, pageID)
}
