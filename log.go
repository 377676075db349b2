package codepart

const (
	LogCatgEditor = "Editor"
	LogCatgSyntax = "Syntax"
	LogCatgGutter = "Gutter"
	LogCatgConf   = "Config"
	LogCatgDoc    = "Document"
)

// DebugLog, when set, receives per-category debug messages. The demo
// application points it at stdout when --dbg is given.
var DebugLog func(category, format string, args ...interface{})

func log(category, format string, args ...interface{}) {
	if DebugLog != nil {
		DebugLog(category, format, args...)
	}
}
