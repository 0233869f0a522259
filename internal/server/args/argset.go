package args

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// AuthType selects how the HTTP server authenticates requests.
type AuthType string

const (
	AuthPassword AuthType = "password"
	AuthNone     AuthType = "none"
)

func parseAuthType(v string) (AuthType, bool) {
	switch AuthType(v) {
	case AuthPassword, AuthNone:
		return AuthType(v), true
	}
	return "", false
}

// LogLevel is the logging verbosity of the server process.
type LogLevel string

const (
	LogTrace LogLevel = "trace"
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// ParseLogLevel validates a log level name, as found in --log or
// $LOG_LEVEL. Unrecognized names return false.
func ParseLogLevel(v string) (LogLevel, bool) {
	switch LogLevel(v) {
	case LogTrace, LogDebug, LogInfo, LogWarn, LogError:
		return LogLevel(v), true
	}
	return "", false
}

// OptionalString records a flag that may appear without a value: absent,
// present bare, or present with a value. "--cert" asks for a generated
// certificate while "--cert=path" supplies one.
type OptionalString struct {
	Set   bool
	Value string
}

// HasValue reports whether the flag carried an explicit value.
func (o OptionalString) HasValue() bool { return o.Set && o.Value != "" }

func (o OptionalString) String() string { return o.Value }

// WorkspaceExt is the file extension that marks a workspace description
// file when inferring the open target from positional arguments.
const WorkspaceExt = ".atelier-workspace"

// ArgSet is the typed result of one parse pass over a single source
// (command line or config file). Zero values mean "not provided"; the
// set map distinguishes an explicit zero from an absent flag so that
// later layering can tell the two apart.
type ArgSet struct {
	Auth           AuthType
	Password       string
	HashedPassword string

	Cert     OptionalString
	CertHost string
	CertKey  string

	BindAddr   string
	Host       string
	Port       int
	Socket     string
	SocketMode string

	Config        string
	UserDataDir   string
	ExtensionsDir string

	Log     LogLevel
	Verbose bool

	AppName      string
	WelcomeText  string
	ProxyDomains []string

	ListExtensions      bool
	InstallExtensions   []string
	UninstallExtensions []string
	ShowVersions        bool
	Force               bool

	Open             bool
	IgnoreLastOpened bool
	NewWindow        bool
	ReuseWindow      bool
	Workspace        string
	Folder           string

	Locale               string
	DisableFileDownloads bool
	DisableTelemetry     bool
	DisableUpdateCheck   bool

	Link OptionalString

	Help    bool
	Version bool

	// Positional holds everything after "--" plus any non-flag tokens
	// not claimed by the open-target inference.
	Positional []string

	set       map[string]struct{}
	flagCount int
}

// NewArgSet returns an empty set ready for the parser.
func NewArgSet() *ArgSet {
	return &ArgSet{set: make(map[string]struct{})}
}

// IsSet reports whether the named option was provided, including fields
// filled by the open-target inference.
func (a *ArgSet) IsSet(name string) bool {
	_, ok := a.set[name]
	return ok
}

// FlagCount is the number of options set by explicit flag tokens. Fields
// inferred from positional arguments do not count; a command line whose
// FlagCount is zero carried nothing but paths.
func (a *ArgSet) FlagCount() int { return a.flagCount }

// SetNames returns the provided option names in sorted order.
func (a *ArgSet) SetNames() []string {
	names := make([]string, 0, len(a.set))
	for name := range a.set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *ArgSet) markSet(name string) {
	if a.set == nil {
		a.set = make(map[string]struct{})
	}
	a.set[name] = struct{}{}
}

func (a *ArgSet) markFlag(name string) {
	a.markSet(name)
	a.flagCount++
}

// Usage writes the flag reference in schema order, one row per option.
func Usage(w io.Writer) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for i := range Options {
		spec := &Options[i]
		names := "--" + spec.Name
		if spec.Short != "" {
			names = fmt.Sprintf("-%s, %s", spec.Short, names)
		}
		help := spec.Help
		if spec.Beta {
			help = "(beta) " + help
		}
		fmt.Fprintf(tw, "  %s\t%s\n", names, help)
	}
	tw.Flush()
}
