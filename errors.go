package sscene

import "errors"

var (
	// ErrDuplicateName is returned by Add* when the registry already holds the name.
	ErrDuplicateName = errors.New("sscene: duplicate name")
	// ErrNotFound is returned when a referenced name is not registered.
	ErrNotFound = errors.New("sscene: not found")
	// ErrAssetLoad covers unreadable, incomplete or unsupported mesh and image assets.
	ErrAssetLoad = errors.New("sscene: asset load failed")
	// ErrIncomplete is wrapped alongside ErrAssetLoad when an importer flags
	// references to vertex data it could not find.
	ErrIncomplete = errors.New("sscene: incomplete scene")
	// ErrBackendInit is returned by NewScene. The scene must not be used afterwards.
	ErrBackendInit = errors.New("sscene: backend initialisation failed")
	// ErrDegenerateBasis is returned when forward and up are parallel or zero.
	ErrDegenerateBasis = errors.New("sscene: degenerate basis")
	// ErrClosed is returned by Add* once Close has released the scene.
	ErrClosed          = errors.New("sscene: scene closed")
	ErrInvalidGeometry = errors.New("sscene: invalid geometry")
	ErrZeroVector      = errors.New("sscene: zero vector")
)
