package commands

import (
	"errors"
	"fmt"
	"gpacalc/lib/configutil"
	"os"
	"strings"
)

const defaultConfigName = "gpa.json5"

type Config struct {
	// the student courses endpoint, without the query string
	ApiUrl    string `json:"api_url" env:"GPA_API_URL"`
	Token     string `json:"token" env:"GPA_TOKEN"`
	StudentId string `json:"student_id" env:"GPA_STUDENT_ID"`
}

func (c Config) Validate() error {
	var missing []string
	if c.ApiUrl == "" {
		missing = append(missing, "api_url (GPA_API_URL, --url)")
	}
	if c.Token == "" {
		missing = append(missing, "token (GPA_TOKEN, --token)")
	}
	if c.StudentId == "" {
		missing = append(missing, "student_id (GPA_STUDENT_ID, --student)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// LoadConfig resolves the configuration from (in increasing priority) the
// config file, the environment and the given flag values.
// an empty `path` means gpa.json5 is searched for from the cwd upwards and
// may be absent, an explicit `path` must exist.
func LoadConfig(path string, flags Config) (Config, error) {
	var file Config
	var err error
	if path != "" {
		file, err = configutil.ReadConfig[Config](path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		file, err = configutil.ReadRecursively[Config](defaultConfigName)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := configutil.Layer(file, configutil.ReadEnv[Config](), flags)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
