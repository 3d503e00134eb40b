package domain

// Warband is the roster aggregate the campaign engine reads. Warband
// building and editing happen outside this engine; only the linkage
// fields are needed here.
type Warband struct {
	ID        string
	Name      string
	FactionID string
}
