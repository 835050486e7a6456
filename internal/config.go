package internal

import (
	"fmt"
	"persona-lab/ai"

	"github.com/Netflix/go-env"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/persona"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`

	IdentityFile  string `env:"IDENTITY_FILE"`
	MapFile       string `env:"MAP_FILE"`
	TargetType    string `env:"TARGET_TYPE,default=http://xmlns.com/foaf/0.1/Person"`
	NamePredicate string `env:"NAME_PREDICATE,default=http://xmlns.com/foaf/0.1/name"`
	CorpusName    string `env:"CORPUS_NAME,default=default"`
	Balance       bool   `env:"BALANCE,default=true"`

	MappingSize int     `env:"MAPPING_SIZE,default=100000"`
	BatchSize   int     `env:"BATCH_SIZE,default=1000"`
	Alpha       float64 `env:"ALPHA,default=0.2"`
	C           float64 `env:"C,default=0"`
	Epochs      int     `env:"EPOCHS,default=100"`
	TrainRatio  float64 `env:"TRAIN_RATIO,default=0.8"`
	Seed        int64   `env:"SEED,default=0"`
	Reshuffle   bool    `env:"RESHUFFLE,default=false"`
}

// LoadConfig decodes the process environment. Call godotenv.Load first to pick up a .env file.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Hyperparameters().Validate(); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}

func (c Config) Hyperparameters() ai.Hyperparameters {
	return ai.Hyperparameters{
		MappingSize: c.MappingSize,
		BatchSize:   c.BatchSize,
		Alpha:       c.Alpha,
		C:           c.C,
	}
}

