package source

// Default is a literal value that is always present, whatever key is asked
// for. It terminates a precedence chain.
type Default string

// Lookup returns the literal
func (d Default) Lookup(string) (string, bool) {
	return string(d), true
}

// Name returns the source name
func (d Default) Name() string {
	return "Default"
}
