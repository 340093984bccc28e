package constant

// Environment variable names. They double as the flat key names of the document.
const (
	// Azure OpenAI endpoint credentials
	EnvAzureOpenAIAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvAzureOpenAIEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvAzureOpenAIDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvAPIVersion            = "API_VERSION"

	// Service principal credentials
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvTenantID     = "TENANT_ID"

	// Power BI target resource
	EnvPowerBIWorkspace = "POWERBI_WORKSPACE"
	EnvSemanticModel    = "SEMANTIC_MODEL"

	// RLS rules as a JSON object of {"filter", "description"} records
	EnvRLSRules = "RLS_RULES"

	// Free-text semantic model metadata
	EnvSemanticModelMetadata = "SEMANTIC_MODEL_METADATA"

	// Path of the configuration file read by the loader
	EnvConfigFile = "DAX_COPILOT_CONFIG_FILE"
)

// Key groups of the document.
const (
	GroupOpenAI           = "openai"
	GroupServicePrincipal = "serviceprincipal"
	GroupTarget           = "target"
	GroupRLSRules         = "rlsrules"
	GroupMetadata         = "metadata"
)

// Key names inside each group, as used in config files.
const (
	KeyAPIKey        = "apikey"
	KeyEndpoint      = "endpoint"
	KeyDeployment    = "deployment"
	KeyAPIVersion    = "apiversion"
	KeyClientID      = "clientid"
	KeyClientSecret  = "clientsecret"
	KeyTenantID      = "tenantid"
	KeyWorkspace     = "workspace"
	KeySemanticModel = "semanticmodel"
	KeyFilter        = "filter"
	KeyDescription   = "description"
)

// KeyPathByEnv maps every flat external name to its "group.key" path.
var KeyPathByEnv = map[string]string{
	EnvAzureOpenAIAPIKey:     GroupOpenAI + "." + KeyAPIKey,
	EnvAzureOpenAIEndpoint:   GroupOpenAI + "." + KeyEndpoint,
	EnvAzureOpenAIDeployment: GroupOpenAI + "." + KeyDeployment,
	EnvAPIVersion:            GroupOpenAI + "." + KeyAPIVersion,
	EnvClientID:              GroupServicePrincipal + "." + KeyClientID,
	EnvClientSecret:          GroupServicePrincipal + "." + KeyClientSecret,
	EnvTenantID:              GroupServicePrincipal + "." + KeyTenantID,
	EnvPowerBIWorkspace:      GroupTarget + "." + KeyWorkspace,
	EnvSemanticModel:         GroupTarget + "." + KeySemanticModel,
	EnvSemanticModelMetadata: GroupMetadata,
}

// SecretKeyAliases maps the camelCase keys of a Power BI application secret
// to the flat external names.
var SecretKeyAliases = map[string]string{
	"apiKey":       EnvAzureOpenAIAPIKey,
	"tenantId":     EnvTenantID,
	"clientId":     EnvClientID,
	"clientSecret": EnvClientSecret,
}
