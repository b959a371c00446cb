package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string      `yaml:"env" env-default:"local"`
	StoragePath    string      `yaml:"storage_path" env-required:"true"`
	Build          BuildConfig `yaml:"build"`
	WorkerPoolSize int         `yaml:"worker_pool_size" env-default:"4"`
	// CorpusPath is not part of the YAML surface; it is always supplied
	// on the command line, since it names this run's input rather than
	// a deployment setting. It may name either a single NDJSON file or
	// a directory of them, one corpus per file.
	CorpusPath string `yaml:"-"`
	// Explore launches the interactive forest browser after the build
	// completes, in place of blocking for a shutdown signal.
	Explore bool `yaml:"-"`
}

type BuildConfig struct {
	MinimumThresholdAgainstMaxWordCount float64 `yaml:"minimum_threshold_against_max_word_count" env-default:"0.0"`
	SimilarityThreshold                 float64 `yaml:"similarity_threshold" env-default:"0.5"`
	MinimumSourcesImportant             int     `yaml:"minimum_sources_important" env-default:"1"`
	MinimumSourcesBranch                int     `yaml:"minimum_sources_branch" env-default:"1"`
}

func MustLoad() *Config {
	configPathFlag := flag.String("config", "", "Path to the config file")
	storagePathFlag := flag.String("storage-path", "", "Path to the storage file")
	corpusPathFlag := flag.String("corpus-path", "", "Path to an NDJSON corpus file, or a directory of them")
	exploreFlag := flag.Bool("explore", false, "Launch the interactive forest browser after the build completes")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = fetchConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("error loading config file: " + err.Error())
	}

	if *storagePathFlag != "" {
		cfg.StoragePath = *storagePathFlag
	}

	cfg.CorpusPath = *corpusPathFlag
	cfg.Explore = *exploreFlag

	return &cfg
}

// fetchConfigPath fetches the config path from the environment, falling
// back to a default if it was not set in the command line flag.
// Priority: flag > env > default.
func fetchConfigPath() string {
	var res string

	res = os.Getenv("CONFIG_PATH")
	if res == "" {
		cwd, _ := os.Getwd()
		fmt.Println("Current working directory:", cwd)
	}

	if res == "" {
		res = "./config/config_local.yaml"
	}

	fmt.Println("Config path:", res)
	return res
}
