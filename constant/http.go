package constant

// Azure and Power BI endpoints used when turning the document into client configuration
const (
	// DefaultAuthorityHost is the Microsoft identity platform host used for service principals
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	// PowerBIScope is the client-credentials scope of the Power BI REST API
	PowerBIScope = "https://analysis.windows.net/powerbi/api/.default"
	// DefaultAPIVersion is the Azure OpenAI API version applied when none is configured
	DefaultAPIVersion = "2024-02-01"
	// DefaultConfigFile is the configuration file read when DAX_COPILOT_CONFIG_FILE is unset
	DefaultConfigFile = "config.yaml"
	// RedactedValue replaces secrets in redacted copies of the document
	RedactedValue = "****"
)
