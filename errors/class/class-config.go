package class

// MjrConfig is the major classification of the configuration errors.
var MjrConfig Major

func registerConfigClasses() {
	MjrConfig = MustRegisterMajor("Config", "config related issues")

	registerConfigRead()
	registerConfigValue()
}

var (
	// MnrConfigRead is the 'MjrConfig' minor for the config read issues.
	MnrConfigRead Minor

	// ConfigReadNotFound is the 'MjrConfig', 'MnrConfigRead' class when the config is not found.
	ConfigReadNotFound Class

	// ConfigReadFailed is the 'MjrConfig', 'MnrConfigRead' class when the config could not be decoded.
	ConfigReadFailed Class
)

func registerConfigRead() {
	MnrConfigRead = MjrConfig.MustRegisterMinor("Read", "config read issues")

	ConfigReadNotFound = MnrConfigRead.MustRegisterIndex("Not Found", "config not found while reading").Class()
	ConfigReadFailed = MnrConfigRead.MustRegisterIndex("Failed", "config decoding failed").Class()
}

var (
	// MnrConfigValue is the 'MjrConfig' minor for the config value issues.
	MnrConfigValue Minor

	// ConfigValueNil is the 'MjrConfig', 'MnrConfigValue' class for the nil config value.
	ConfigValueNil Class

	// ConfigValueInvalid is the 'MjrConfig', 'MnrConfigValue' class for the config validation failures.
	ConfigValueInvalid Class
)

func registerConfigValue() {
	MnrConfigValue = MjrConfig.MustRegisterMinor("Value", "config value issues")

	ConfigValueNil = MnrConfigValue.MustRegisterIndex("Nil", "provided nil config value").Class()
	ConfigValueInvalid = MnrConfigValue.MustRegisterIndex("Invalid", "validating config failed").Class()
}
