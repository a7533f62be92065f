package endpoint

// Exports for testing. These allow black-box tests to check the
// classification logic without a live server.

var (
	ParseStatusError       = parseStatusError
	ClassifyStatusError    = classifyStatusError
	ClassifyTransportError = classifyTransportError
	DecodeMessage          = decodeMessage
)
