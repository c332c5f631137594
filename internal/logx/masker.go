package logx

import "regexp"

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Authorization: (?:Basic |Bearer )?)[^\r\n]+(\r?)`),
	regexp.MustCompile(`((?:api_key|appid|apiKey)=)[^&\s]+()`),
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
}

// SensitiveDataMasker hides credentials from dumped upstream traffic: API keys
// travel in query strings and Authorization headers for most providers.
type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}
	return input
}

type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
