package config

import (
	"errors"
	"net"
	"strings"

	"github.com/spf13/viper"
)

var validModes = map[string]bool{
	"plain": true, "pretty": true, "styled": true, "json": true, "ndjson": true, "tui": true, "markdown": true, "md": true,
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	mode := strings.ToLower(strings.TrimSpace(v.GetString("render.mode")))
	if !validModes[mode] {
		errs = append(errs, errors.New("render.mode must be one of plain, pretty, styled, json, ndjson, tui, markdown"))
	}
	if v.GetInt("render.width") < 0 {
		errs = append(errs, errors.New("render.width must not be negative"))
	}
	if mode == "pretty" && strings.TrimSpace(v.GetString("render.style")) == "" {
		errs = append(errs, errors.New("render.style is required for pretty mode"))
	}
	if v.GetInt("cache.size") < 0 {
		errs = append(errs, errors.New("cache.size must not be negative"))
	}
	if v.GetInt("search.limit") <= 0 {
		errs = append(errs, errors.New("search.limit must be greater than 0"))
	}
	if addr := v.GetString("http_addr"); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, errors.New("http_addr must be host:port"))
		}
	}
	if tok := v.GetString("auth.token"); tok != strings.TrimSpace(tok) {
		errs = append(errs, errors.New("auth.token must not have surrounding whitespace"))
	}
	return errors.Join(errs...)
}
