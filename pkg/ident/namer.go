package ident

// Namer remembers which original name claimed an identifier.
type Namer struct {
	owners map[string]string
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{owners: make(map[string]string)}
}

// Claim registers name as the identifier of orig. Claiming a name twice for
// the same original is fine. A name already owned by a different original
// returns an AmbiguousIdentifierCollision error.
func (n *Namer) Claim(name, orig string) error {
	if prev, ok := n.owners[name]; ok && prev != orig {
		return CollisionError(name, prev, orig)
	}
	n.owners[name] = orig
	return nil
}

// Owner returns the original name that claimed an identifier.
func (n *Namer) Owner(name string) (string, bool) {
	res, ok := n.owners[name]
	return res, ok
}
