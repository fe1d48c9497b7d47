package plugindeps

import "errors"

// Failure kinds surfaced by a Resolver. Match them with errors.Is against
// the error returned from any resolve operation.
var (
	// ErrDescriptor indicates the plugin's own descriptor metadata could
	// not be read.
	ErrDescriptor = errors.New("plugin descriptor could not be read")

	// ErrCollection indicates the dependency graph could not be built,
	// e.g. because a dependency's descriptor is missing.
	ErrCollection = errors.New("plugin dependency graph could not be collected")

	// ErrResolution indicates artifact files could not be located or
	// downloaded during the resolve phase.
	ErrResolution = errors.New("plugin dependencies could not be resolved")

	// ErrArtifact indicates the plugin's own artifact could not be
	// resolved.
	ErrArtifact = errors.New("plugin artifact could not be resolved")
)

// ResolutionError is the single error type every failed resolve operation
// returns. It carries the originating plugin identity, the failure kind
// and the underlying cause.
type ResolutionError struct {
	GroupID    string
	ArtifactID string
	Version    string

	// Kind is one of the sentinel failure kinds above.
	Kind error

	// Err is the underlying cause. For resolve-phase failures this is
	// the engine's unwrapped cause, not its envelope.
	Err error
}

// Error implements error.
func (e *ResolutionError) Error() string {
	msg := "resolving plugin " + e.GroupID + ":" + e.ArtifactID + ":" + e.Version + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the failure kind and the underlying cause to
// errors.Is and errors.As.
func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newResolutionError(p Plugin, kind, cause error) error {
	return &ResolutionError{
		GroupID:    p.GroupID,
		ArtifactID: p.ArtifactID,
		Version:    p.Version,
		Kind:       kind,
		Err:        cause,
	}
}
