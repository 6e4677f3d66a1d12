package main

import "github.com/spf13/viper"

// initConfig wires configuration: defaults, then an optional .env file,
// then NOKANBAN_* environment variables (highest precedence).
func initConfig() {
	viper.SetDefault("port", "3001")
	viper.SetDefault("db", "nokanban.db")
	viper.SetDefault("server_url", "http://localhost:3001")
	// The sweep threshold is configurable because the product copy promises
	// 30 days while the job has always run at 15; until that is settled the
	// deploy decides.
	viper.SetDefault("cleanup_days", 15)
	viper.SetDefault("cleanup_interval_hours", 24)
	viper.SetDefault("allowed_origins", "*")
	viper.SetDefault("log_file", "")

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig() // the .env file is optional

	viper.SetEnvPrefix("NOKANBAN")
	viper.AutomaticEnv()
}
