package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dgitonga/qrollcall/internal/flagx"
	"github.com/dgitonga/qrollcall/internal/timex"
)

// JsonConfig is the DTO for reading JSON configuration files. Interval
// fields use timex.Duration so both "15m" strings and integer nanoseconds
// parse. Values are copied into the runtime Config after unmarshalling.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
}

// parseJson overlays configuration values from the JSON file named by the
// -c/-config flags onto config. Only fields the file sets are copied, so a
// partial file keeps the remaining defaults. No flag means nothing to load.
// An unreadable or invalid file panics: a config explicitly pointed at must
// parse.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
}
