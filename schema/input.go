package schema

import mcpschema "github.com/viant/mcp-protocol/schema"

// JSONSchemaType maps a parameter type tag to the advertised JSON-Schema primitive.
// Integer and number collapse into "number"; arrays and objects are advertised as "object".
func JSONSchemaType(tag TypeTag) string {
	switch tag {
	case TypeString:
		return "string"
	case TypeInteger, TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	}
	return "object"
}

// NewInputSchema builds the advertised input schema; required lists names in declaration order.
func NewInputSchema(params []ParameterDescriptor) mcpschema.ToolInputSchema {
	ret := mcpschema.ToolInputSchema{
		Type:       "object",
		Properties: make(map[string]map[string]interface{}, len(params)),
	}
	for _, param := range params {
		property := map[string]interface{}{"type": JSONSchemaType(param.Type)}
		if param.Description != "" {
			property["description"] = param.Description
		}
		ret.Properties[param.Name] = property
		if param.Required {
			ret.Required = append(ret.Required, param.Name)
		}
	}
	return ret
}

// NewValidationSchema builds a precise JSON schema used to check call arguments.
// Unlike the advertised schema it keeps integer and array kinds distinct.
func NewValidationSchema(params []ParameterDescriptor) map[string]interface{} {
	properties := make(map[string]interface{}, len(params))
	var required []interface{}
	for _, param := range params {
		kind := string(param.Type)
		if !param.Type.Valid() {
			kind = "object"
		}
		properties[param.Name] = map[string]interface{}{"type": kind}
		if param.Required {
			required = append(required, param.Name)
		}
	}
	ret := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		ret["required"] = required
	}
	return ret
}
