package registry

// tagKind is the closed set of element kinds the builder dispatches on.
type tagKind int

const (
	tagUnknown tagKind = iota
	// tagIgnored is a recognized element that carries nothing for the model.
	tagIgnored
	tagEnums
	tagEnum
	tagCommands
	tagCommand
	tagProto
	tagParam
	tagFeature
	tagExtensions
	tagExtension
	tagRequire
	tagRemove
)

// tagTable maps element names at one nesting level to their kind.
type tagTable map[string]tagKind

func (t tagTable) classify(name string) tagKind {
	return t[name]
}

// Tables per nesting level. Whether tagUnknown is skipped or fatal is
// decided by the reader of each level.
var (
	rootTags = tagTable{
		"enums":      tagEnums,
		"commands":   tagCommands,
		"feature":    tagFeature,
		"extensions": tagExtensions,
		"comment":    tagIgnored,
		"types":      tagIgnored,
		"groups":     tagIgnored,
		"kinds":      tagIgnored,
	}

	enumsTags = tagTable{
		"enum":   tagEnum,
		"unused": tagIgnored,
	}

	commandsTags = tagTable{
		"command": tagCommand,
	}

	commandTags = tagTable{
		"proto":    tagProto,
		"param":    tagParam,
		"alias":    tagIgnored,
		"glx":      tagIgnored,
		"vecequiv": tagIgnored,
	}

	extensionsTags = tagTable{
		"extension": tagExtension,
	}

	// Closed: anything else inside a feature or extension is fatal.
	featureTags = tagTable{
		"require": tagRequire,
		"remove":  tagRemove,
	}

	// Closed: anything else inside a require or remove block is fatal.
	deltaTags = tagTable{
		"enum":    tagEnum,
		"command": tagCommand,
		"type":    tagIgnored,
	}
)
