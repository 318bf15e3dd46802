package session

import (
	"sync"

	"github.com/google/uuid"

	"product_copy_studio/generator"
	"product_copy_studio/logging"
)

// Store keeps workspaces in memory, keyed by id.
type Store struct {
	gen    generator.Generator
	logger *logging.Logger

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewStore(gen generator.Generator, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{gen: gen, logger: logger, workspaces: make(map[string]*Workspace)}
}

func (s *Store) Create() (*Workspace, error) {
	id := uuid.NewString()
	w, err := NewWorkspace(id, s.gen, s.logger)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.workspaces[id] = w
	s.mu.Unlock()
	s.logger.Debug("session created", "session", id)
	return w, nil
}

func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workspaces[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[id]; !ok {
		return ErrNotFound
	}
	delete(s.workspaces, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}
