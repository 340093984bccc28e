// Package azureopenai turns the endpoint credentials of a document into an
// Azure OpenAI client.
package azureopenai

import (
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// ClientOptions returns the request options addressing the Azure resource in creds.
// An empty API version falls back to the default one.
func ClientOptions(creds model.EndpointCredentials) []option.RequestOption {
	apiVersion := creds.APIVersion
	if apiVersion == "" {
		apiVersion = constant.DefaultAPIVersion
	}

	return []option.RequestOption{
		azure.WithEndpoint(creds.Endpoint, apiVersion),
		azure.WithAPIKey(creds.APIKey),
	}
}

// NewClient creates an OpenAI client bound to the Azure resource.
// extra options are applied after the Azure ones.
func NewClient(creds model.EndpointCredentials, extra ...option.RequestOption) (*openai.Client, error) {
	if creds.APIKey == "" {
		return nil, pkg.ValidateBusinessError(constant.ErrMissingAPIKey, "AzureOpenAI")
	}

	client := openai.NewClient(append(ClientOptions(creds), extra...)...)

	return &client, nil
}

// Model returns the deployment name in the form expected by request params.
// Azure routes requests by deployment, so it stands in for the model name.
func Model(creds model.EndpointCredentials) openai.ChatModel {
	return openai.ChatModel(creds.Deployment)
}
