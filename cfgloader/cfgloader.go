// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	envVariable = "ENVIRONMENT"
	defaultDir  = "./config"
)

// Error codes returned by Load.
const (
	CodeInvalidEnvironment = "INVALID_ENVIRONMENT"
	CodeConfigNotFound     = "CONFIG_NOT_FOUND"
	CodeInvalidConfig      = "INVALID_CONFIG"
)

// Load reads ${dir}/${ENVIRONMENT}.yaml into T.
//
// A .env file is loaded first when present, $VAR references in the YAML are expanded,
// `default` struct tags fill unset fields and `validate` tags are checked with
// go-playground/validator. Unless WithSilent is given the loaded config is printed with
// `mask:"true"` fields hidden.
//
// Example:
//
//	type Config struct {
//	    Host string `yaml:"host" validate:"required"`
//	    Port int    `yaml:"port" default:"8080"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	o := Options{Dir: defaultDir}
	for _, opt := range opts {
		opt(&o)
	}

	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		return config, errx.New("[cfgloader]: config type must not be a pointer", errx.WithCode(CodeInvalidConfig))
	}

	_ = godotenv.Load()

	env, err := environment()
	if err != nil {
		return config, err
	}

	path := filepath.Join(o.Dir, env+".yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New("[cfgloader]: config file not found",
			errx.WithCode(CodeConfigNotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	if err != nil {
		return config, errx.Wrap(err)
	}

	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config)
	if err != nil {
		return config, errx.New("[cfgloader]: failed to unmarshal config file",
			errx.WithCode(CodeInvalidConfig),
			errx.WithDetails(errx.D{"path": path, "cause": err.Error()}),
		)
	}

	err = defaults.Set(&config)
	if err != nil {
		return config, errx.Wrap(err)
	}

	err = validate(&config, env)
	if err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}

	return config, nil
}

// MustLoad is like Load but logs the error and exits the process on failure.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		slog.Error(fmt.Sprintf("[cfgloader]: %v", err))
		os.Exit(1)
	}
	return config
}

func environment() (string, error) {
	env := os.Getenv(envVariable)
	allowed := []string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}
	if !slices.Contains(allowed, env) {
		return "", errx.New("[cfgloader]: ENVIRONMENT env variable is not set or invalid",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithDetails(errx.D{"value": env, "choices": strings.Join(allowed, ", ")}),
		)
	}
	return env, nil
}

func validate(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.Struct(config)
	if err == nil {
		return nil
	}

	var failed []string
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint:errorlint // validator returns the concrete type
		for _, fe := range errs {
			tag := fe.Tag()
			if fe.Param() != "" {
				tag += "=" + fe.Param()
			}
			failed = append(failed, fmt.Sprintf("%s: %s", fe.Namespace(), tag))
		}
	} else {
		failed = append(failed, err.Error())
	}

	return errx.New(fmt.Sprintf("[cfgloader]: invalid fields in %s config", env),
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeInvalidConfig),
		errx.WithDetails(errx.D{"fields": failed}),
	)
}
