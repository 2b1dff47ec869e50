package engine

import (
	"errors"
	"fmt"

	"github.com/linerider/trackphysics/internal/entity"
)

// ErrInvalidEntityID is returned when a caller references an entity id the
// engine never assigned, or that has since been removed.
var ErrInvalidEntityID = errors.New("engine: invalid entity id")

// ErrInvalidTemplateID is returned when a caller references a skeleton
// template id the engine never assigned.
var ErrInvalidTemplateID = errors.New("engine: invalid template id")

// ErrInvalidLineID is returned when a caller references a line id the
// engine never assigned, or that has since been removed.
var ErrInvalidLineID = errors.New("engine: invalid line id")

// wrapLineErr builds the public invalid-line-id error for a specific id.
func wrapLineErr(id LineID) error {
	return fmt.Errorf("%w: %d", ErrInvalidLineID, id)
}

// wrapEntityErr maps the entity package's own unknown-id sentinels onto
// the engine's public ones, so callers of this package never need to
// import internal/entity just to compare errors.
func wrapEntityErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrUnknownEntity):
		return fmt.Errorf("%w: %v", ErrInvalidEntityID, err)
	case errors.Is(err, entity.ErrUnknownTemplate):
		return fmt.Errorf("%w: %v", ErrInvalidTemplateID, err)
	default:
		return err
	}
}
