package schema

const (
	MethodInitialize              = "initialize"
	MethodPing                    = "ping"
	MethodToolsList               = "tools/list"
	MethodToolsCall               = "tools/call"
	MethodNotificationCancel      = "notifications/cancelled"
	MethodNotificationInitialized = "notifications/initialized"

	// MetadataProcedure is the reserved endpoint-side query returning the JSON EndpointMetadata document.
	MetadataProcedure = "__mcp_metadata"
)
