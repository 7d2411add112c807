package version

import (
	"github.com/bokysan/uucodec/internal/version"
	"github.com/k0kubun/go-ansi"
)

const (
	Bold           = "\x1b[1m"
	Reset          = "\x1b[0m"
	LightGray      = "\x1b[37m"
	DarkGray       = "\x1b[90m"
	White          = "\x1b[97m"
	BackgroundBlue = "\x1b[44m"
)

// Command prints the version and build details
type Command struct {
}

func (i *Command) String() string {
	return "Version details"
}

//goland:noinspection GoUnhandledErrorResult
func (i *Command) Execute(args []string) error {
	PrintVersion()
	details := []struct{ label, value string }{
		{"Git tag     ", version.GitTag},
		{"Git branch  ", version.GitBranch},
		{"Git state   ", version.GitState},
		{"Go version  ", version.GoVersion},
	}
	for _, d := range details {
		if d.value != "" {
			ansi.Printf(DarkGray+" "+d.label+White+"%+v"+Reset+"\n", d.value)
		}
	}
	return nil
}

//goland:noinspection GoUnhandledErrorResult
func PrintVersion() {
	ansi.Printf(Bold+BackgroundBlue+
		LightGray+" UUCODEC - uuencode / uudecode "+White+"%s"+LightGray+" "+Reset+"\n"+
		DarkGray+" Built on    "+White+"%+v\n"+
		DarkGray+" Git version "+White+"%+v"+Reset+"\n",
		version.AppVersion(), version.BuildDate, version.GitCommit)
}
