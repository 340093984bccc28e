// Package principal builds client-credentials configuration for the service
// principal of a document. Tokens are only requested when the caller asks
// the returned config for a token source.
package principal

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenURL returns the v2.0 token endpoint of the tenant on authorityHost.
func TokenURL(authorityHost, tenantID string) string {
	if authorityHost == "" {
		authorityHost = constant.DefaultAuthorityHost
	}

	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(authorityHost, "/"), tenantID)
}

// ClientCredentials returns the Power BI client-credentials config for sp.
// An empty authorityHost selects the public Microsoft identity platform.
func ClientCredentials(sp model.ServicePrincipal, authorityHost string) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     sp.ClientID,
		ClientSecret: sp.ClientSecret,
		TokenURL:     TokenURL(authorityHost, sp.TenantID),
		Scopes:       []string{constant.PowerBIScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
}
