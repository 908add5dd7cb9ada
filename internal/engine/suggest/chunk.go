package suggest

// Kind classifies a diff chunk.
type Kind uint8

const (
	// Common text appears in both the old and new content.
	Common Kind = iota
	// Added text appears only in the proposed content.
	Added
	// Removed text appears only in the original content.
	Removed
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Common:
		return "common"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// State is the per-chunk resolution state.
type State uint8

const (
	Pending State = iota
	Accepted
	Rejected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Chunk is a maximal run of diff spans sharing one kind. Common chunks
// are not actionable; added and removed chunks start pending and are
// resolved individually.
type Chunk struct {
	Text  string
	Kind  Kind
	state State
}

// State returns the chunk's resolution state.
func (c *Chunk) State() State {
	return c.state
}
