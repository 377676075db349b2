package main

import (
	"fmt"
	"os"
	"sort"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/ddkwork/golibrary/mylog"
	"github.com/ogier/pflag"
	"github.com/pkg/profile"

	"github.com/jeffwilliams/codepart"
)

const editorName = "codepart"

var (
	optProfile       = pflag.BoolP("profile", "p", false, "Profile the code CPU usage. The profile file location is printed to stdout.")
	optLanguage      = pflag.StringP("language", "l", "", "Force the syntax language instead of detecting it from the filename")
	optListLanguages = pflag.BoolP("list-languages", "L", false, "List the supported syntax languages and exit")
	optDebugStdout   = pflag.BoolP("dbg", "b", false, "Print debug logs to stdout")
	optSampleConf    = pflag.BoolP("sample-settings", "s", false, "Print a sample settings file and exit")
)

var (
	editor      *codepart.Editor
	windowStyle = codepart.DefaultStyle
	settings    = codepart.Settings{
		Editor: codepart.EditorSettings{
			TabStopInterval: 30,
		},
	}
)

func main() {
	mylog.Call(run)
}

func run() {
	parseAndValidateOptions()

	if *optListLanguages {
		listLanguages()
		return
	}

	if *optSampleConf {
		fmt.Print(codepart.GenerateSampleSettings())
		return
	}

	if *optDebugStdout {
		codepart.DebugLog = func(category, format string, args ...interface{}) {
			fmt.Printf("["+category+"] "+format, args...)
		}
	}

	var profiler interface{ Stop() }
	if *optProfile {
		profiler = profile.Start(profile.ProfilePath("."))
	}

	loadSettings()
	loadStyle()

	editor = codepart.NewEditor(windowStyle)
	loadInitialFile()

	go func() {
		w := app.NewWindow(app.Title(editorName))
		editor.OnRedrawNeeded = w.Invalidate
		mylog.Check(loop(w))
		os.Exit(0)
	}()
	app.Main()

	if profiler != nil {
		profiler.Stop()
	}
}

func parseAndValidateOptions() {
	pflag.Parse()

	if pflag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Only one file may be opened\n")
		os.Exit(1)
	}
}

func listLanguages() {
	names := lexers.Names(false)
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func loadSettings() {
	err := codepart.LoadSettingsFromConfigFile(&settings)
	if err != nil {
		return
	}

	if settings.Editor.TabStopInterval > 0 {
		windowStyle.TabStopInterval = settings.Editor.TabStopInterval
	}
	windowStyle.LineSpacing = settings.Editor.LineSpacing
}

func loadStyle() {
	s, err := codepart.LoadStyleFromConfigFile(&windowStyle)
	if err != nil {
		windowStyle.FontFace = codepart.MonoFont
		return
	}
	windowStyle = s
}

func loadInitialFile() {
	filename := pflag.Arg(0)
	if filename == "" {
		if lang := syntaxLanguage(); lang != "" {
			editor.DetectSyntax("", lang)
		}
		return
	}

	contents := mylog.Check2(os.ReadFile(filename))

	editor.SetText(string(contents))
	editor.DetectSyntax(filename, syntaxLanguage())
}

// syntaxLanguage is the language to highlight in: the --language flag when
// given, otherwise the language from the settings file.
func syntaxLanguage() string {
	if *optLanguage != "" {
		return *optLanguage
	}
	return settings.Editor.Language
}

func loop(w *app.Window) error {
	var focusSet bool

	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			var ops op.Ops
			gtx := layout.NewContext(&ops, e)

			editor.Layout(gtx, e.Queue)

			if !focusSet {
				editor.SetFocus(gtx)
				focusSet = true
			}

			e.Frame(gtx.Ops)
		}
	}
	return nil
}

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n", os.Args[0])
		fmt.Printf("Launch the codepart editor. If [file] is given, that file is opened.\n\n")
		fmt.Printf("Options:\n")

		pflag.PrintDefaults()
	}
}
