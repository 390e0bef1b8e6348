package observe

// FuncMeta describes a wrapped function for telemetry purposes.
type FuncMeta struct {
	ID        string // Fully qualified ID (namespace.name or just name)
	Namespace string // Grouping such as a package or subsystem (optional)
	Name      string // Function name (required)
	Version   string // Version of the wrapped logic (optional)
}

// FuncID returns the fully qualified function identifier.
// If ID is set it is returned as is; otherwise it is built from Namespace
// and Name.
func (m FuncMeta) FuncID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// SpanName returns the span name for a call of this function.
// Format: func.call.<namespace>.<name> or func.call.<name>
func (m FuncMeta) SpanName() string {
	if m.Namespace != "" {
		return "func.call." + m.Namespace + "." + m.Name
	}
	return "func.call." + m.Name
}

// Validate reports ErrMissingFuncName when Name is empty.
func (m FuncMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingFuncName
	}
	return nil
}
