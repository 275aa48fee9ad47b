package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type envVars struct {
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	DataDir     string `envconfig:"DATA_DIR"    default:"./data"`
	PoolSize    uint64 `envconfig:"POOL_SIZE"   default:"64"`
}

func mustLoadEnv() envVars {
	// a missing .env is fine, the environment itself still applies
	_ = godotenv.Load()

	var env envVars
	if err := envconfig.Process("framedb", &env); err != nil {
		panic(err)
	}

	return env
}
