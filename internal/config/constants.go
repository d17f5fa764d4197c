package config

const SourceFileExt = ".slate"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".slate", ".sla"}

// Reserved references in the elaborated store.
const (
	// MainRef is the default root object resolved by the second pass.
	MainRef = "main"
	// GlobalRef holds the accumulated global constraint formula.
	GlobalRef = "global"
	// NameMember is the implicit member every object receives.
	NameMember = "name"
	// RootName is the implicit name of an object bound at the empty reference.
	RootName = "root"
)

// DefaultActionCost is used when an action omits its cost member.
const DefaultActionCost = int64(1)
