// Package config contains the viewimport configuration read with viper.
//
// The configuration could be read from a named file searched in the working
// directory and the 'configs' directory, from the file at provided path or
// built from the defaults only. Each value could be overwritten with the
// environment variable prefixed with 'VIEWIMPORT_' i.e. the
// 'importer.strict_property_values' key with VIEWIMPORT_IMPORTER_STRICT_PROPERTY_VALUES.
package config

// Config contains general configurations for the view importer.
type Config struct {
	// LogLevel is the current logging level.
	LogLevel string `mapstructure:"log_level" validate:"isdefault|oneof=debug3 debug2 debug info warning error critical"`

	// Namespaces maps the namespace prefixes to their URIs.
	Namespaces map[string]string `mapstructure:"namespaces"`

	// Dictionary is the configuration of the dictionary models.
	Dictionary *Dictionary `mapstructure:"dictionary" validate:"required"`

	// Importer is the configuration of the view importer.
	Importer *Importer `mapstructure:"importer" validate:"required"`

	// Repository is the node store configuration.
	Repository *Repository `mapstructure:"repository" validate:"required"`
}

// Dictionary defines where the dictionary models are defined.
type Dictionary struct {
	// ModelFiles are the paths to the yaml or json model definition files.
	ModelFiles []string `mapstructure:"model_files"`
}

// UUID binding strategies.
const (
	UUIDCreateNew        = "create_new"
	UUIDRemoveExisting   = "remove_existing"
	UUIDReplaceExisting  = "replace_existing"
	UUIDUpdateExisting   = "update_existing"
	UUIDThrowOnCollision = "throw_on_collision"
)

// Importer is the configuration of the view importer.
type Importer struct {
	// StrictPropertyValues rejects the second value of a property that is not
	// wrapped with the 'values' element instead of turning it into a collection.
	StrictPropertyValues bool `mapstructure:"strict_property_values"`

	// ConsumerPermission is the permission name that replaces the 'guest' permission.
	ConsumerPermission string `mapstructure:"consumer_permission" validate:"required"`

	// UUIDBinding defines how the imported node unique ids are bound to the existing nodes.
	UUIDBinding string `mapstructure:"uuid_binding" validate:"oneof=create_new remove_existing replace_existing update_existing throw_on_collision"`

	// ExcludedClasses are the prefixed names of the types and aspects that are not imported.
	ExcludedClasses []string `mapstructure:"excluded_classes"`
}
