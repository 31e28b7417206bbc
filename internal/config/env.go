package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Env is the subset of the process environment that affects a run.
type Env struct {
	Token   string
	APIBase string
	Debug   bool
}

// LoadEnv reads GITHUB_TOKEN (falling back to GH_TOKEN), BINSTALL_API_BASE
// and BINSTALL_DEBUG.
func LoadEnv() Env {
	v := viper.New()
	v.SetEnvPrefix("BINSTALL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Explicit names bypass the prefix; order sets precedence.
	_ = v.BindEnv("token", "GITHUB_TOKEN", "GH_TOKEN")
	v.SetDefault("api_base", DefaultAPIBase)
	v.SetDefault("debug", false)

	return Env{
		Token:   strings.TrimSpace(v.GetString("token")),
		APIBase: strings.TrimSpace(v.GetString("api_base")),
		Debug:   v.GetBool("debug"),
	}
}
