package dictionary

import (
	"embed"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
)

//go:embed models/*.yaml
var builtinModels embed.FS

var validate = validator.New()

// Model is the description of the content model as read from the model file.
// All the names are the prefixed qualified names i.e. 'cm:content'.
type Model struct {
	Name       string           `mapstructure:"name"`
	Namespaces []NamespaceModel `mapstructure:"namespaces" validate:"dive"`
	DataTypes  []DataTypeModel  `mapstructure:"data_types" validate:"dive"`
	Types      []ClassModel     `mapstructure:"types" validate:"dive"`
	Aspects    []ClassModel     `mapstructure:"aspects" validate:"dive"`
}

// NamespaceModel defines the namespace of the model.
type NamespaceModel struct {
	Prefix string `mapstructure:"prefix" validate:"required"`
	URI    string `mapstructure:"uri" validate:"required,uri"`
}

// DataTypeModel defines the property data type.
type DataTypeModel struct {
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description"`
}

// ClassModel defines the type or aspect.
type ClassModel struct {
	Name           string             `mapstructure:"name" validate:"required"`
	Parent         string             `mapstructure:"parent"`
	DefaultAspects []string           `mapstructure:"default_aspects"`
	Properties     []PropertyModel    `mapstructure:"properties" validate:"dive"`
	Associations   []AssociationModel `mapstructure:"associations" validate:"dive"`
}

// PropertyModel defines the class property.
type PropertyModel struct {
	Name      string `mapstructure:"name" validate:"required"`
	Type      string `mapstructure:"type" validate:"required"`
	Multiple  bool   `mapstructure:"multiple"`
	Mandatory bool   `mapstructure:"mandatory"`
}

// AssociationModel defines the class association.
type AssociationModel struct {
	Name   string `mapstructure:"name" validate:"required"`
	Target string `mapstructure:"target" validate:"required"`
	Child  bool   `mapstructure:"child"`
}

// ReadModelFile reads the model from the yaml or json file at 'path'.
func ReadModelFile(path string) (*Model, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, class.DictionaryModelRead, "reading model file: '%s' failed", path)
	}
	return decodeModel(v, path)
}

// ReadModel reads the model from the 'r' encoded in the 'format' ('yaml', 'json').
func ReadModel(r io.Reader, format string) (*Model, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, class.DictionaryModelRead, "reading model failed")
	}
	return decodeModel(v, "")
}

// DefaultModels gets the built in system and content models.
func DefaultModels() ([]*Model, error) {
	var models []*Model
	for _, name := range []string{"system.yaml", "content.yaml"} {
		f, err := builtinModels.Open("models/" + name)
		if err != nil {
			return nil, errors.Wrapf(err, class.DictionaryModelRead, "opening built in model: '%s' failed", name)
		}
		m, err := ReadModel(f, strings.TrimPrefix(filepath.Ext(name), "."))
		f.Close()
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

func decodeModel(v *viper.Viper, path string) (*Model, error) {
	m := &Model{}
	if err := v.Unmarshal(m); err != nil {
		return nil, errors.Wrap(err, class.DictionaryModelRead, "decoding model failed").SetDetail(path)
	}
	if m.Name == "" && path != "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := validate.Struct(m); err != nil {
		return nil, errors.Wrapf(err, class.DictionaryModelInvalid, "model: '%s' is not valid", m.Name)
	}
	return m, nil
}
