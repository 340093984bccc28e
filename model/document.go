package model

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
)

// Document is the DAX Copilot configuration. It is built once at startup and
// handed to consumers; nothing in this module mutates it after loading.
type Document struct {
	OpenAI           EndpointCredentials `json:"openai" koanf:"openai"`
	ServicePrincipal ServicePrincipal    `json:"serviceprincipal" koanf:"serviceprincipal"`
	Target           TargetResource      `json:"target" koanf:"target"`
	RLSRules         RuleSet             `json:"rlsrules,omitempty" koanf:"rlsrules" validate:"dive"`
	Metadata         string              `json:"metadata,omitempty" koanf:"metadata"`
}

// EndpointCredentials holds the Azure OpenAI resource settings.
type EndpointCredentials struct {
	APIKey     string `json:"apikey" koanf:"apikey" validate:"required"`
	Endpoint   string `json:"endpoint" koanf:"endpoint" validate:"required,url"`
	Deployment string `json:"deployment" koanf:"deployment" validate:"required"`
	APIVersion string `json:"apiversion" koanf:"apiversion" validate:"required"`
}

// ServicePrincipal identifies the non-interactive identity used against Power BI.
type ServicePrincipal struct {
	ClientID     string `json:"clientid" koanf:"clientid" validate:"required"`
	ClientSecret string `json:"clientsecret" koanf:"clientsecret" validate:"required"`
	TenantID     string `json:"tenantid" koanf:"tenantid" validate:"required"`
}

// TargetResource names the Power BI workspace and semantic model.
type TargetResource struct {
	Workspace     string `json:"workspace" koanf:"workspace" validate:"required"`
	SemanticModel string `json:"semanticmodel" koanf:"semanticmodel" validate:"required"`
}

// AccessRule is a row-level-security filter. Filter may contain {name}
// placeholders that the consumer substitutes before use.
type AccessRule struct {
	Filter      string `json:"filter" koanf:"filter" validate:"required"`
	Description string `json:"description" koanf:"description" validate:"required"`
}

// RuleSet maps rule names to their definitions.
type RuleSet map[string]AccessRule

// Lookup returns the literal stored under group and key.
// The metadata group has a single value, addressed with an empty key or "metadata".
func (d Document) Lookup(group, key string) (string, error) {
	group = strings.ToLower(strings.TrimSpace(group))
	key = strings.TrimSpace(key)

	// rule names are case sensitive
	if group != constant.GroupRLSRules {
		key = strings.ToLower(key)
	}

	if group == constant.GroupMetadata && (key == "" || key == constant.GroupMetadata) {
		return d.Metadata, nil
	}

	path := group + "." + key

	if value, ok := d.Flatten()[path]; ok {
		return value, nil
	}

	return "", pkg.ValidateBusinessError(constant.ErrUnknownKey, "ConfigurationKey", path)
}

// Value returns the literal stored under a flat external name such as AZURE_OPENAI_ENDPOINT.
// RLS_RULES is not a scalar and is not addressable here; use Rule instead.
func (d Document) Value(name string) (string, error) {
	path, ok := constant.KeyPathByEnv[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return "", pkg.ValidateBusinessError(constant.ErrUnknownKey, "ConfigurationKey", name)
	}

	if path == constant.GroupMetadata {
		return d.Metadata, nil
	}

	return d.Flatten()[path], nil
}

// Rule returns the RLS rule with the given name.
func (d Document) Rule(name string) (AccessRule, bool) {
	rule, ok := d.RLSRules[name]

	return rule, ok
}

// RuleNames returns the configured rule names in sorted order.
func (d Document) RuleNames() []string {
	names := make([]string, 0, len(d.RLSRules))
	for name := range d.RLSRules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flatten returns every value keyed by its "group.key" path.
// Rules appear as rlsrules.<name>.filter and rlsrules.<name>.description.
func (d Document) Flatten() map[string]string {
	flat := map[string]string{
		constant.GroupOpenAI + "." + constant.KeyAPIKey:                 d.OpenAI.APIKey,
		constant.GroupOpenAI + "." + constant.KeyEndpoint:               d.OpenAI.Endpoint,
		constant.GroupOpenAI + "." + constant.KeyDeployment:             d.OpenAI.Deployment,
		constant.GroupOpenAI + "." + constant.KeyAPIVersion:             d.OpenAI.APIVersion,
		constant.GroupServicePrincipal + "." + constant.KeyClientID:     d.ServicePrincipal.ClientID,
		constant.GroupServicePrincipal + "." + constant.KeyClientSecret: d.ServicePrincipal.ClientSecret,
		constant.GroupServicePrincipal + "." + constant.KeyTenantID:     d.ServicePrincipal.TenantID,
		constant.GroupTarget + "." + constant.KeyWorkspace:              d.Target.Workspace,
		constant.GroupTarget + "." + constant.KeySemanticModel:          d.Target.SemanticModel,
		constant.GroupMetadata:                                          d.Metadata,
	}

	for name, rule := range d.RLSRules {
		prefix := constant.GroupRLSRules + "." + name + "."
		flat[prefix+constant.KeyFilter] = rule.Filter
		flat[prefix+constant.KeyDescription] = rule.Description
	}

	return flat
}

// Fingerprint hashes the flattened document. Documents holding the same
// key to value mapping share a fingerprint, so it is safe to log.
func (d Document) Fingerprint() string {
	flat := d.Flatten()

	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	pairs := make([][2]string, 0, len(paths))
	for _, path := range paths {
		pairs = append(pairs, [2]string{path, flat[path]})
	}

	// string pairs always encode
	b, _ := json.Marshal(pairs)

	return commons.HashSHA256(string(b))
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := d

	if d.RLSRules != nil {
		c.RLSRules = make(RuleSet, len(d.RLSRules))
		for name, rule := range d.RLSRules {
			c.RLSRules[name] = rule
		}
	}

	return c
}

// Redacted returns a copy with the API key and client secret masked.
// Empty secrets stay empty so missing values remain visible.
func (d Document) Redacted() Document {
	c := d.Clone()

	if !commons.IsNilOrEmpty(&c.OpenAI.APIKey) {
		c.OpenAI.APIKey = constant.RedactedValue
	}

	if !commons.IsNilOrEmpty(&c.ServicePrincipal.ClientSecret) {
		c.ServicePrincipal.ClientSecret = constant.RedactedValue
	}

	return c
}
