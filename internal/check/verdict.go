package check

// Verdict is the tri-state outcome of one classification concern.
type Verdict int

const (
	// VerdictUnknown means the concern could not be checked.
	VerdictUnknown Verdict = iota
	// VerdictFalse means the concern was checked and not found.
	VerdictFalse
	// VerdictTrue means the pattern was found.
	VerdictTrue
)

// String renders the verdict as a report cell: unknown is empty.
func (v Verdict) String() string {
	switch v {
	case VerdictTrue:
		return "True"
	case VerdictFalse:
		return "False"
	default:
		return ""
	}
}
