package config

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
)

// EnvPrefix is the prefix of the environment variables overwriting the config values.
const EnvPrefix = "VIEWIMPORT"

var validate = validator.New()

// ReadNamedConfig reads the config with the provided name from the working
// directory or the 'configs' directory.
func ReadNamedConfig(name string) (*Config, error) {
	v := newViper()
	v.SetConfigName(name)
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	return read(v)
}

// ReadConfigFile reads the config from the file at 'path'.
func ReadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return read(v)
}

// ReadDefaultConfig reads the default configuration with the environment overwrites.
func ReadDefaultConfig() (*Config, error) {
	return unmarshal(newViper())
}

// ViperSetDefaults sets the default values for the viper config.
func ViperSetDefaults(v *viper.Viper) {
	setDefaults(v)
}

// Validate validates the config values.
func Validate(c *Config) error {
	if c == nil {
		return errors.New(class.ConfigValueNil, "provided nil config")
	}
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, class.ConfigValueInvalid, "validating config failed")
	}
	return nil
}

func read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.Wrap(err, class.ConfigReadNotFound, "config file not found")
		}
		return nil, errors.Wrap(err, class.ConfigReadFailed, "reading config failed")
	}
	log.Debugf("Using config file: '%s'", v.ConfigFileUsed())
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling Config failed: %v", err)
		return nil, errors.Wrap(err, class.ConfigReadFailed, "decoding config failed")
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnvs(v)
	return v
}

func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"log_level": "info",
		"namespaces": map[string]string{
			qname.ViewPrefix:     qname.ViewURI,
			qname.ContentPrefix:  qname.ContentModelURI,
			qname.SystemPrefix:   qname.SystemModelURI,
			qname.DataTypePrefix: qname.DictionaryModelURI,
		},
		"dictionary.model_files":          []string{},
		"importer.strict_property_values": false,
		"importer.consumer_permission":    "Consumer",
		"importer.uuid_binding":           UUIDCreateNew,
		"importer.excluded_classes":       []string{},
		"repository.driver":               "memory",
		"repository.store":                "workspace://SpacesStore",
		"repository.max_conns":            4,
	}
}

func setDefaults(v *viper.Viper) {
	for k, value := range defaultValues() {
		v.SetDefault(k, value)
	}
}

// bindEnvs binds the environment variables for all the keys that have their defaults
// and the connection fields without default values.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"repository.raw_url", "repository.host", "repository.port", "repository.username",
		"repository.password", "repository.dbname", "repository.sslmode", "repository.max_timeout",
	}
	for k := range defaultValues() {
		if k == "namespaces" {
			continue
		}
		keys = append(keys, k)
	}
	for _, key := range keys {
		_ = v.BindEnv(key, EnvName(key))
	}
}

// EnvName gets the environment variable name for the config 'key'.
func EnvName(key string) string {
	return EnvPrefix + "_" + strcase.ToScreamingSnake(strings.ReplaceAll(key, ".", "_"))
}
