package class

// MjrCommon is the major classification of the errors shared by the packages.
var MjrCommon Major

func registerCommonClasses() {
	MjrCommon = MustRegisterMajor("Common", "common errors")

	registerCommonLogger()
}

var (
	// MnrCommonLogger is the 'MjrCommon' minor for the logger issues.
	MnrCommonLogger Minor

	// CommonLoggerUnknownLevel is the 'MjrCommon', 'MnrCommonLogger' class for the
	// unknown logging level.
	CommonLoggerUnknownLevel Class

	// CommonLoggerNotImplement is the 'MjrCommon', 'MnrCommonLogger' class for the logger
	// that doesn't implement required interface.
	CommonLoggerNotImplement Class
)

func registerCommonLogger() {
	MnrCommonLogger = MjrCommon.MustRegisterMinor("Logger", "logger issues")

	CommonLoggerUnknownLevel = MnrCommonLogger.MustRegisterIndex("Unknown Level", "unknown logger level").Class()
	CommonLoggerNotImplement = MnrCommonLogger.MustRegisterIndex("Not Implement", "logger doesn't implement interface").Class()
}
