package core

// Entry is a contact as held by a persistent store, tagged with the
// sequence number it was inserted under so load order survives restarts.
type Entry struct {
	Seq     uint64
	Contact Contact
}
