package dock

import (
	"slices"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// Register adds a dockable to the Space. Its handle starts unanchored.
//
// Register fails with DUPLICATE_IDENTIFIER if the persistent ID is already
// registered and with INVALID_DOCKABLE if the ID is malformed or the tab text
// is empty.
func (s *Space) Register(d Dockable) error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDockable, "dockable is nil")
	}
	id := d.PersistentID()
	if err := errors.ValidatePersistentID(id); err != nil {
		return err
	}
	if _, exists := s.handles[id]; exists {
		return errors.New(errors.ErrCodeDuplicateIdentifier, "registration for dockable failed: persistent ID %q already exists", id)
	}
	if d.TabText() == "" {
		return errors.New(errors.ErrCodeInvalidDockable, "dockable %q must have tab text", id)
	}

	s.handles[id] = &Handle{space: s, dockable: d}
	s.order = append(s.order, id)
	s.logger.Debug("registered", "id", id, "style", d.Style())
	return nil
}

// Deregister removes a dockable and detaches every observer owned by its
// handle. What happens to a docked dockable depends on the DeregisterPolicy.
func (s *Space) Deregister(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	if h.Docked() || h.Unpinned() {
		if s.opts.Deregister != DeregisterAutoUndock {
			return errors.New(errors.ErrCodeStillDocked, "dockable %q must be undocked before deregistration", h.ID())
		}
		if err := s.Undock(d); err != nil {
			return err
		}
	}

	h.observers.clear()
	h.removed = true
	delete(s.handles, h.ID())
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == h.ID() })
	s.logger.Debug("deregistered", "id", h.ID())
	return nil
}

// Lookup returns the dockable registered under id.
func (s *Space) Lookup(id string) (Dockable, error) {
	h, err := s.HandleByID(id)
	if err != nil {
		return nil, err
	}
	return h.dockable, nil
}

// Handle returns the handle of a registered dockable.
func (s *Space) Handle(d Dockable) (*Handle, error) { return s.handleFor(d) }

// HandleByID returns the handle registered under id.
func (s *Space) HandleByID(id string) (*Handle, error) {
	h, ok := s.handles[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotRegistered, "dockable with persistent ID %q has not been registered", id)
	}
	return h, nil
}

// Registered reports whether a dockable with id is registered.
func (s *Space) Registered(id string) bool {
	_, ok := s.handles[id]
	return ok
}

// Dockables returns the registered dockables in registration order.
func (s *Space) Dockables() []Dockable {
	out := make([]Dockable, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.handles[id].dockable)
	}
	return out
}

// IsDocked reports whether d is registered and anchored in a tree.
func (s *Space) IsDocked(d Dockable) bool {
	h, err := s.handleFor(d)
	return err == nil && h.Docked()
}

func (s *Space) handleFor(d Dockable) (*Handle, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeNotRegistered, "dockable is nil")
	}
	return s.HandleByID(d.PersistentID())
}
