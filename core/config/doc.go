// Package config loads environment variables into typed structs using
// caarlos0/env. A .env file in the working directory is read on first use.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Each struct type is parsed once; later loads of the same type return the
// cached value.
package config
