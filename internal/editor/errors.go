package editor

import "errors"

// ErrRootExists indicates a root with the same name is already registered.
var ErrRootExists = errors.New("root already exists")

// ErrNoViewRoot indicates a DOM root was attached before its view root was
// created. This is a usage-contract violation, not a recoverable state.
var ErrNoViewRoot = errors.New("no view root with that name")

// ErrRenderInProgress indicates Render was called re-entrantly while a
// render pass was already running.
var ErrRenderInProgress = errors.New("render already in progress")

// ErrDestroyed indicates an operation on a destroyed document.
var ErrDestroyed = errors.New("document destroyed")
