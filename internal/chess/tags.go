package chess

// Tag names used by the parser and writers.
const (
	EventTag  = "Event"
	SiteTag   = "Site"
	DateTag   = "Date"
	RoundTag  = "Round"
	WhiteTag  = "White"
	BlackTag  = "Black"
	ResultTag = "Result"
	FENTag    = "FEN"
	SetupTag  = "SetUp"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// Results lists the game termination markers.
var Results = []string{"1-0", "0-1", "1/2-1/2", "*"}

// IsResult reports whether s is a game termination marker.
func IsResult(s string) bool {
	for _, r := range Results {
		if s == r {
			return true
		}
	}
	return false
}
