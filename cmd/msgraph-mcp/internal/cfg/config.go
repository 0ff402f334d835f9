package cfg

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// configKeys maps the configuration file keys to the flag names.
var configKeys = map[string]string{
	"client_id": "client-id",
	"tenant_id": "tenant",
	"auth_file": "auth-file",
	"endpoint":  "endpoint",
	"rate":      "rate",
	"burst":     "burst",
	"log_file":  "log",
	"log_json":  "log-json",
	"verbose":   "v",
	"trace":     "trace",
	"transport": "transport",
	"listen":    "listen",
}

// LoadConfig reads the TOML configuration file and applies its values to the
// flags of fs that were not set explicitly.  Keys for flags that fs does not
// define are ignored, so that one file can serve all commands.  Empty
// filename is a no-op.
func LoadConfig(fs *flag.FlagSet, filename string) error {
	if filename == "" {
		return nil
	}
	var values map[string]any
	if _, err := toml.DecodeFile(filename, &values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %q: %w", filename, err)
		}
		return fmt.Errorf("config file %q: parse: %w", filename, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, ok := configKeys[key]
		if !ok {
			return fmt.Errorf("config file %q: unknown key %q", filename, key)
		}
		if set[name] || fs.Lookup(name) == nil {
			continue
		}
		if err := fs.Set(name, fmt.Sprint(values[key])); err != nil {
			return fmt.Errorf("config file %q: %s: %w", filename, key, err)
		}
	}
	return nil
}
