// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"
)

const (
	// DefClientID is the public client ID of the Microsoft Graph Command Line
	// Tools application, which is preconsented for the delegated Teams scopes.
	DefClientID = "14d82eec-204b-4c2f-b7e8-296a70dab67e"
	DefTenantID = "common"
	DefEndpoint = "https://graph.microsoft.com/v1.0"
	DefRate     = 600 // requests per minute
	DefBurst    = 10
)

var (
	TraceFile   string
	LogFile     string
	JSONHandler bool
	Verbose     bool
	ConfigFile  string

	ClientID string
	TenantID string
	AuthFile string // empty means the default location in the home directory.

	Endpoint  string
	RateLimit int
	RateBurst int

	// Log is the logger for the commands, set up by main.
	Log = slog.Default()
)

type FlagMask int

const (
	DefaultFlags  FlagMask = 0
	OmitAuthFlags FlagMask = 1 << iota
	OmitGraphFlags
	OmitConfigFlag

	OmitAll = OmitAuthFlags |
		OmitGraphFlags |
		OmitConfigFlag
)

// SetBaseFlags sets base flags.  It is safe to call it more than once on the
// same flag set.
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	if fs.Lookup("v") != nil {
		return
	}
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JSONHandler, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "config", os.Getenv("MSGRAPH_CONFIG"), "TOML configuration `file`, its values apply to the flags\nthat are not set on the command line")
	}
	if mask&OmitAuthFlags == 0 {
		fs.StringVar(&ClientID, "client-id", osenv.Value("MSGRAPH_CLIENT_ID", DefClientID), "Entra ID application (client) `ID`")
		fs.StringVar(&TenantID, "tenant", osenv.Value("MSGRAPH_TENANT_ID", DefTenantID), "Entra ID tenant `ID` or domain, or \"common\", \"organizations\"")
		fs.StringVar(&AuthFile, "auth-file", os.Getenv("MSGRAPH_AUTH_FILE"), "credential `file` (default: ~/.msgraph-mcp-auth.json)")
	}
	if mask&OmitGraphFlags == 0 {
		fs.StringVar(&Endpoint, "endpoint", osenv.Value("MSGRAPH_ENDPOINT", DefEndpoint), "Microsoft Graph `URL`")
		fs.IntVar(&RateLimit, "rate", osenv.Value("MSGRAPH_RATE", DefRate), "Microsoft Graph request rate limit in `requests` per minute,\n0 disables the limiter")
		fs.IntVar(&RateBurst, "burst", osenv.Value("MSGRAPH_BURST", DefBurst), "allow up to `N` burst requests")
	}
}

var logLevel = new(slog.LevelVar)

// LogLevel returns the level that the handlers set up by main use.
func LogLevel() slog.Leveler {
	return logLevel
}

// SetDebugLevel switches the logging to the debug level.
func SetDebugLevel() {
	logLevel.Set(slog.LevelDebug)
}
