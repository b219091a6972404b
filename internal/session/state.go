// Package session in-process oturum durumunu tutar: aktif kullanıcı,
// workspace snapshot'ları ve collaborator listeleri. Güncellemeler tagged
// union event'leri olarak uygulanır, stringly-typed action dispatch yoktur.
package session

import (
	"sync"

	"cypress_backend/internal/model"
)

// Event kapalı bir union'dır; yalnızca bu paketteki tipler implement eder.
type Event interface {
	isEvent()
}

type CurrentUserSet struct {
	User model.User
}

type WorkspaceLoaded struct {
	Workspace model.Workspace
}

type WorkspaceUpdated struct {
	WorkspaceID string
	Title       *string
	IconID      *string
	Logo        *string
	BannerURL   *string
}

type WorkspaceRemoved struct {
	WorkspaceID string
}

type CollaboratorAdded struct {
	WorkspaceID string
	User        model.User
}

type CollaboratorRemoved struct {
	WorkspaceID string
	UserID      string
}

func (CurrentUserSet) isEvent()      {}
func (WorkspaceLoaded) isEvent()     {}
func (WorkspaceUpdated) isEvent()    {}
func (WorkspaceRemoved) isEvent()    {}
func (CollaboratorAdded) isEvent()   {}
func (CollaboratorRemoved) isEvent() {}

type State struct {
	mu            sync.RWMutex
	currentUser   *model.User
	workspaces    map[string]model.Workspace
	collaborators map[string][]model.User
}

func NewState() *State {
	return &State{
		workspaces:    make(map[string]model.Workspace),
		collaborators: make(map[string][]model.User),
	}
}

// Apply bir event'i state'e uygular. Bilinmeyen workspace'lere gelen
// güncellemeler sessizce yok sayılır.
func (s *State) Apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case CurrentUserSet:
		u := e.User
		s.currentUser = &u

	case WorkspaceLoaded:
		s.workspaces[e.Workspace.ID] = e.Workspace

	case WorkspaceUpdated:
		ws, ok := s.workspaces[e.WorkspaceID]
		if !ok {
			return
		}
		if e.Title != nil {
			ws.Title = *e.Title
		}
		if e.IconID != nil {
			ws.IconID = *e.IconID
		}
		if e.Logo != nil {
			ws.Logo = *e.Logo
		}
		if e.BannerURL != nil {
			ws.BannerURL = *e.BannerURL
		}
		s.workspaces[e.WorkspaceID] = ws

	case WorkspaceRemoved:
		delete(s.workspaces, e.WorkspaceID)
		delete(s.collaborators, e.WorkspaceID)

	case CollaboratorAdded:
		// Aynı kullanıcı için tekrar eden event no-op'tur; local liste
		// unique index ile aynı kümeyi yansıtır
		for _, u := range s.collaborators[e.WorkspaceID] {
			if u.ID == e.User.ID {
				return
			}
		}
		s.collaborators[e.WorkspaceID] = append(s.collaborators[e.WorkspaceID], e.User)

	case CollaboratorRemoved:
		list := s.collaborators[e.WorkspaceID]
		filtered := list[:0]
		for _, u := range list {
			if u.ID != e.UserID {
				filtered = append(filtered, u)
			}
		}
		s.collaborators[e.WorkspaceID] = filtered
	}
}

func (s *State) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return model.User{}, false
	}
	return *s.currentUser, true
}

func (s *State) Workspace(id string) (model.Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	return ws, ok
}

func (s *State) Collaborators(workspaceID string) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.collaborators[workspaceID]
	out := make([]model.User, len(list))
	copy(out, list)
	return out
}
