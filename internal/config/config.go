package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Init wires viper to the optional config file and NOVELTRANS_
// environment variables for every setting.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".noveltrans")
	}

	viper.SetEnvPrefix("NOVELTRANS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db.path", "data/noveltrans.db")
	viper.SetDefault("export.directory", "exports")
	viper.SetDefault("translate.chunk_size", 3000)
	viper.SetDefault("translate.cache_mode", "use")
	viper.SetDefault("translate.context_tail", 500)
	viper.SetDefault("provider.timeout", "120s")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

type Config struct {
	DBPath          string
	ExportDir       string
	ChunkSize       int
	CacheMode       string
	ContextTail     int
	ProviderTimeout time.Duration
}

func Load() Config {
	return Config{
		DBPath:          viper.GetString("db.path"),
		ExportDir:       viper.GetString("export.directory"),
		ChunkSize:       viper.GetInt("translate.chunk_size"),
		CacheMode:       viper.GetString("translate.cache_mode"),
		ContextTail:     viper.GetInt("translate.context_tail"),
		ProviderTimeout: viper.GetDuration("provider.timeout"),
	}
}
