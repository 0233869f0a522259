package args

import "fmt"

// Kind is the value shape of a flag.
type Kind int

const (
	// KindBool flags take no value; their presence means true.
	KindBool Kind = iota
	// KindString flags require a single string value.
	KindString
	// KindStringList flags accumulate every occurrence.
	KindStringList
	// KindOptionalString flags may appear with or without a value.
	KindOptionalString
	// KindNumber flags require a base-10 integer.
	KindNumber
	// KindAuth flags accept the authentication type vocabulary.
	KindAuth
	// KindLogLevel flags accept the log level vocabulary.
	KindLogLevel
)

// OptionSpec describes one recognized flag. Exactly one of the field
// accessors is non-nil, matching Kind, and points the parser at the
// ArgSet field the flag populates.
type OptionSpec struct {
	Name  string
	Short string
	Kind  Kind
	Help  string

	// Path marks string values that are resolved against the working
	// directory before being stored.
	Path bool
	// FileOnly restricts the flag to config files; passing it on the
	// command line is rejected with a pointer at the matching
	// environment variable.
	FileOnly bool
	// Beta marks flags whose behavior may still change.
	Beta bool

	boolField     func(*ArgSet) *bool
	stringField   func(*ArgSet) *string
	listField     func(*ArgSet) *[]string
	optionalField func(*ArgSet) *OptionalString
	numberField   func(*ArgSet) *int
	authField     func(*ArgSet) *AuthType
	levelField    func(*ArgSet) *LogLevel
}

// Options is the full flag schema, in the order used for --help output.
var Options = []OptionSpec{
	{Name: "auth", Kind: KindAuth,
		Help:      "The type of authentication to use.",
		authField: func(a *ArgSet) *AuthType { return &a.Auth }},
	{Name: "password", Kind: KindString, FileOnly: true,
		Help:        "The password for password authentication. Can only be set in the config file or $PASSWORD.",
		stringField: func(a *ArgSet) *string { return &a.Password }},
	{Name: "hashed-password", Kind: KindString, FileOnly: true,
		Help:        "An argon2 hash of the password. Takes precedence over password.",
		stringField: func(a *ArgSet) *string { return &a.HashedPassword }},
	{Name: "cert", Kind: KindOptionalString, Path: true,
		Help:          "Path to a certificate. A self signed certificate is generated if no path is provided.",
		optionalField: func(a *ArgSet) *OptionalString { return &a.Cert }},
	{Name: "cert-host", Kind: KindString,
		Help:        "Hostname to use when generating a self signed certificate.",
		stringField: func(a *ArgSet) *string { return &a.CertHost }},
	{Name: "cert-key", Kind: KindString, Path: true,
		Help:        "Path to the certificate key when using a non-generated cert.",
		stringField: func(a *ArgSet) *string { return &a.CertKey }},
	{Name: "disable-file-downloads", Kind: KindBool,
		Help:      "Disable file downloads from the workspace.",
		boolField: func(a *ArgSet) *bool { return &a.DisableFileDownloads }},
	{Name: "disable-telemetry", Kind: KindBool,
		Help:      "Disable telemetry.",
		boolField: func(a *ArgSet) *bool { return &a.DisableTelemetry }},
	{Name: "disable-update-check", Kind: KindBool,
		Help:      "Disable the update check on startup.",
		boolField: func(a *ArgSet) *bool { return &a.DisableUpdateCheck }},
	{Name: "help", Short: "h", Kind: KindBool,
		Help:      "Show this output.",
		boolField: func(a *ArgSet) *bool { return &a.Help }},
	{Name: "locale", Kind: KindString,
		Help:        "Locale for the user interface.",
		stringField: func(a *ArgSet) *string { return &a.Locale }},
	{Name: "open", Kind: KindBool,
		Help:      "Open the workspace in the browser on startup.",
		boolField: func(a *ArgSet) *bool { return &a.Open }},
	{Name: "bind-addr", Kind: KindString,
		Help:        "Address to bind to, in host:port form.",
		stringField: func(a *ArgSet) *string { return &a.BindAddr }},
	{Name: "config", Kind: KindString, Path: true,
		Help:        "Path to the yaml config file. Every flag maps to a key in the file.",
		stringField: func(a *ArgSet) *string { return &a.Config }},
	{Name: "host", Kind: KindString,
		Help:        "Host to listen on. Overrides the host in bind-addr.",
		stringField: func(a *ArgSet) *string { return &a.Host }},
	{Name: "port", Kind: KindNumber,
		Help:        "Port to listen on. Overrides the port in bind-addr.",
		numberField: func(a *ArgSet) *int { return &a.Port }},
	{Name: "socket", Kind: KindString, Path: true,
		Help:        "Path to a socket to listen on instead of a host and port.",
		stringField: func(a *ArgSet) *string { return &a.Socket }},
	{Name: "socket-mode", Kind: KindString,
		Help:        "File mode of the socket.",
		stringField: func(a *ArgSet) *string { return &a.SocketMode }},
	{Name: "log", Kind: KindLogLevel,
		Help:       "Log level.",
		levelField: func(a *ArgSet) *LogLevel { return &a.Log }},
	{Name: "verbose", Short: "vvv", Kind: KindBool,
		Help:      "Enable verbose logging.",
		boolField: func(a *ArgSet) *bool { return &a.Verbose }},
	{Name: "app-name", Kind: KindString,
		Help:        "The name to use in branding. Shown in the page title.",
		stringField: func(a *ArgSet) *string { return &a.AppName }},
	{Name: "welcome-text", Kind: KindString,
		Help:        "Text to show on the login page.",
		stringField: func(a *ArgSet) *string { return &a.WelcomeText }},
	{Name: "proxy-domain", Kind: KindStringList,
		Help:      "Domain used for proxying ports.",
		listField: func(a *ArgSet) *[]string { return &a.ProxyDomains }},
	{Name: "user-data-dir", Kind: KindString, Path: true,
		Help:        "Path to the user data directory.",
		stringField: func(a *ArgSet) *string { return &a.UserDataDir }},
	{Name: "extensions-dir", Kind: KindString, Path: true,
		Help:        "Path to the extensions directory.",
		stringField: func(a *ArgSet) *string { return &a.ExtensionsDir }},
	{Name: "list-extensions", Kind: KindBool,
		Help:      "List installed extensions.",
		boolField: func(a *ArgSet) *bool { return &a.ListExtensions }},
	{Name: "install-extension", Kind: KindStringList,
		Help:      "Install or update an extension by id or path. Repeatable.",
		listField: func(a *ArgSet) *[]string { return &a.InstallExtensions }},
	{Name: "uninstall-extension", Kind: KindStringList,
		Help:      "Uninstall an extension by id. Repeatable.",
		listField: func(a *ArgSet) *[]string { return &a.UninstallExtensions }},
	{Name: "show-versions", Kind: KindBool,
		Help:      "Show version information for installed extensions.",
		boolField: func(a *ArgSet) *bool { return &a.ShowVersions }},
	{Name: "force", Kind: KindBool, Short: "f",
		Help:      "Skip confirmation when installing or uninstalling extensions.",
		boolField: func(a *ArgSet) *bool { return &a.Force }},
	{Name: "ignore-last-opened", Kind: KindBool,
		Help:      "Ignore the last opened folder and open what is passed instead.",
		boolField: func(a *ArgSet) *bool { return &a.IgnoreLastOpened }},
	{Name: "new-window", Short: "n", Kind: KindBool,
		Help:      "Force to open a new window in a running instance.",
		boolField: func(a *ArgSet) *bool { return &a.NewWindow }},
	{Name: "reuse-window", Short: "r", Kind: KindBool,
		Help:      "Force to open a file or folder in an already opened window.",
		boolField: func(a *ArgSet) *bool { return &a.ReuseWindow }},
	{Name: "workspace", Kind: KindString, Path: true,
		Help:        "Workspace file to open.",
		stringField: func(a *ArgSet) *string { return &a.Workspace }},
	{Name: "folder", Kind: KindString, Path: true,
		Help:        "Folder to open.",
		stringField: func(a *ArgSet) *string { return &a.Folder }},
	{Name: "link", Kind: KindOptionalString, Beta: true,
		Help:          "Securely expose the workspace on a public url instead of the local network.",
		optionalField: func(a *ArgSet) *OptionalString { return &a.Link }},
	{Name: "version", Short: "v", Kind: KindBool,
		Help:      "Display version information.",
		boolField: func(a *ArgSet) *bool { return &a.Version }},
}

var (
	byName  = make(map[string]*OptionSpec, len(Options))
	byShort = make(map[string]*OptionSpec)
)

func init() {
	for i := range Options {
		spec := &Options[i]
		if _, dup := byName[spec.Name]; dup {
			panic(fmt.Sprintf("args: duplicate option %q", spec.Name))
		}
		byName[spec.Name] = spec
		if spec.Short == "" {
			continue
		}
		if _, dup := byShort[spec.Short]; dup {
			panic(fmt.Sprintf("args: duplicate short option %q", spec.Short))
		}
		byShort[spec.Short] = spec
	}
}

// Lookup returns the spec for a long flag name, or nil.
func Lookup(name string) *OptionSpec { return byName[name] }

// LookupShort returns the spec for a short alias, or nil.
func LookupShort(short string) *OptionSpec { return byShort[short] }
