package constant

// Template values written into a fresh configuration file. Operators replace
// every value starting with TemplatePlaceholderPrefix before use.
const (
	TemplatePlaceholderPrefix = "your-"

	TemplateAzureOpenAIAPIKey     = "your-azure-openai-api-key-here"
	TemplateAzureOpenAIEndpoint   = "https://your-resource-name.openai.azure.com/"
	TemplateAzureOpenAIDeployment = "your-gpt-deployment-name"

	TemplateClientID     = "your-service-principal-client-id"
	TemplateClientSecret = "your-service-principal-client-secret"
	TemplateTenantID     = "your-azure-tenant-id"

	TemplatePowerBIWorkspace = "your-powerbi-workspace-name"
	TemplateSemanticModel    = "your-semantic-model-name"
)

// Template RLS rules
const (
	RuleCanadaOnly             = "canada_only"
	RuleCanadaOnlyFilter       = `DimSalesTerritory[Sales Territory Country] = "Canada"`
	RuleCanadaOnlyDescription  = "Restrict data to Canada only"
	RuleRegionalManager        = "regional_manager"
	RuleRegionalManagerFilter  = `DimSalesTerritory[Sales Territory Region] = "{region}"`
	RuleRegionalManagerDetails = "Regional access based on territory"
)

// TemplateSemanticModelMetadata describes the sample semantic model.
const TemplateSemanticModelMetadata = `
Semantic model metadata:
- Table: FactInternetSales
    • FactInternetSales[SalesAmount] (decimal)
    • FactInternetSales[Transaction Count] (decimal)
    • FactInternetSales[OrderDate] (date)
- Table: DimSalesTerritory
    • DimSalesTerritory[SalesTerritoryKey] (int)
    • DimSalesTerritory[Sales Territory Region] (string)
    • DimSalesTerritory[Sales Territory Country] (string)
- Table: DimDate
    • DimDate[DateKey] (int)
    • DimDate[CalendarYear] (int)

Relationships:
- FactInternetSales[SalesTerritoryKey] → DimSalesTerritory[SalesTerritoryKey]
- FactInternetSales[DateKey] → DimDate[DateKey]
`
