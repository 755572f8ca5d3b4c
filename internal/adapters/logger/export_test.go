package logger

// Error formatting internals, exported for white-box tests.
var (
	CollectMessages = collectMessages
	FormatMessages  = formatMessages
)
