package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/teamkeeper/internal/flagx"
	"github.com/dmitrijs2005/teamkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "30s" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN      string         `json:"database_dsn"`
	BootstrapTimeout timex.Duration `json:"bootstrap_timeout"`
	DeviceName       string         `json:"device_name"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. No flag, no JSON. Panics on read or unmarshal
// errors. Only fields actually present in the file override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.BootstrapTimeout.Duration != 0 {
		cfg.BootstrapTimeout = time.Duration(jc.BootstrapTimeout.Duration)
	}
	if jc.DeviceName != "" {
		cfg.DeviceName = jc.DeviceName
	}
}
