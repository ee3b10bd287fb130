package domain

// Tool describes a tool exposed by an MCP server.
type Tool struct {
	// Name is the identifier used to invoke the tool.
	Name string `json:"name"`

	// Description explains what the tool does.
	Description string `json:"description,omitempty"`

	// InputSchema is the JSON schema of the tool arguments, as sent by the server.
	InputSchema any `json:"input_schema,omitempty"`
}

// Resource describes a resource exposed by an MCP server.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mime_type,omitempty"`
}

// ContentType identifies the kind of a content block returned by a tool.
type ContentType string

// Content block kinds.
const (
	ContentText     ContentType = "text"
	ContentImage    ContentType = "image"
	ContentAudio    ContentType = "audio"
	ContentResource ContentType = "resource"
	ContentOther    ContentType = "other"
)

// Content is a single block of tool output.
type Content struct {
	Type     ContentType `json:"type"`
	Text     string      `json:"text,omitempty"`
	MIMEType string      `json:"mime_type,omitempty"`
	Data     []byte      `json:"data,omitempty"`
	URI      string      `json:"uri,omitempty"`
}

// ToolResult is the outcome of a tool invocation.
type ToolResult struct {
	Content []Content `json:"content"`

	// Structured holds the structured output when the tool declares one.
	Structured any `json:"structured,omitempty"`

	// IsError reports a tool-level failure. The call itself succeeded.
	IsError bool `json:"is_error"`
}

// Text concatenates all text blocks of the result.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, c := range r.Content {
		if c.Type == ContentText {
			out += c.Text
		}
	}
	return out
}

// ResourceContent is the payload of a resource read.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     []byte `json:"blob,omitempty"`
}
