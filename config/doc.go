// Package config loads seqkit settings.
//
// Viper reads a YAML file, godotenv loads an optional .env file, and SEQKIT_
// prefixed environment variables override both. Files are searched in the
// usual locations (cmd/<name>/config.yml, config/config.yml, config.yml) when
// no explicit path is given.
//
// # Usage
//
//	settings, err := config.LoadSettings("ingest")
//	if err != nil {
//	    return err
//	}
//	shutdown, err := settings.Apply(ctx)
//	defer shutdown(ctx)
//
// Embedding applications load their own struct with Load:
//
//	var cfg AppSettings
//	err := config.Load("ingest", &cfg, config.WithConfigFile("ingest.yml"))
package config
