package apperror

// Code identifies a failure. Codes are banded by Kind in steps of 100.
type Code uint

const (
	InvalidArguments = Code(100 + iota)
	InvalidPattern
	InvalidDefaults
	InvalidConfigFile
)

const (
	CloneFailed = Code(200 + iota)
	TempDirFailed
)

const (
	CreateOutputFailed = Code(300 + iota)
	ReadFileFailed
	WriteOutputFailed
)

const (
	EntryUnreadable = Code(400 + iota)
)

// Kind groups codes into the categories reported to the invoker.
type Kind uint

const (
	Unknown Kind = iota
	Configuration
	Acquisition
	IO
	TraversalEntry
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Acquisition:
		return "acquisition"
	case IO:
		return "io"
	case TraversalEntry:
		return "traversal entry"
	default:
		return "unknown"
	}
}

// Kind maps a code to its band.
func (c Code) Kind() Kind {
	switch c / 100 {
	case 1:
		return Configuration
	case 2:
		return Acquisition
	case 3:
		return IO
	case 4:
		return TraversalEntry
	default:
		return Unknown
	}
}
