package message

// Operation is the request carried by an RPC; one of *GetConfig,
// *EditConfig, *CopyConfig or *DeleteConfig.
type Operation interface {
	// Name returns the operation element name, e.g. "get-config".
	Name() string
	isOperation()
}

// Operation element names.
const (
	OpGetConfig    = "get-config"
	OpEditConfig   = "edit-config"
	OpCopyConfig   = "copy-config"
	OpDeleteConfig = "delete-config"
)

// GetConfig retrieves all or part of a configuration datastore.
type GetConfig struct {
	Source Datastore `json:"source"`
	Filter *Filter   `json:"filter,omitempty"`
}

// EditConfig loads all or part of a configuration into the target
// datastore. Unset options take the protocol defaults, which are for
// the execution layer to apply.
type EditConfig struct {
	Target           Datastore    `json:"target"`
	DefaultOperation *EditDefault `json:"default-operation,omitempty"`
	TestOption       *TestOption  `json:"test-option,omitempty"`
	ErrorOption      *ErrorOption `json:"error-option,omitempty"`
	// Config is the verbatim content of the <config> element, if any.
	Config string `json:"config,omitempty"`
	// URL locates the configuration to load when <url> is sent in
	// place of <config>.
	URL string `json:"url,omitempty"`
}

// CopyConfig replaces the target datastore with the source.
type CopyConfig struct {
	Source Datastore `json:"source"`
	Target Datastore `json:"target"`
}

// DeleteConfig deletes the target datastore.
type DeleteConfig struct {
	Target Datastore `json:"target"`
}

func (*GetConfig) Name() string    { return OpGetConfig }
func (*EditConfig) Name() string   { return OpEditConfig }
func (*CopyConfig) Name() string   { return OpCopyConfig }
func (*DeleteConfig) Name() string { return OpDeleteConfig }

func (*GetConfig) isOperation()    {}
func (*EditConfig) isOperation()   {}
func (*CopyConfig) isOperation()   {}
func (*DeleteConfig) isOperation() {}
