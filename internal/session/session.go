package session

import (
	"time"

	"cypress_backend/internal/model"

	"gorm.io/gorm"
)

// Session bir düzenleme oturumunun akışlarını yürütür: optimistic local
// state güncellemesi, ardından kalıcılaştırma. Başlık düzenlemeleri
// debounce edilir, collaborator değişiklikleri anında yazılır.
type Session struct {
	state     *State
	debouncer *TitleDebouncer
	db        *gorm.DB
}

func New(db *gorm.DB, debounceDelay time.Duration) *Session {
	s := &Session{
		state: NewState(),
		db:    db,
	}
	s.debouncer = NewTitleDebouncer(debounceDelay, s.saveTitle)
	return s
}

func (s *Session) State() *State {
	return s.state
}

func (s *Session) SetCurrentUser(user model.User) {
	s.state.Apply(CurrentUserSet{User: user})
}

func (s *Session) LoadWorkspace(ws model.Workspace) {
	s.state.Apply(WorkspaceLoaded{Workspace: ws})
}

// EditTitle local state'i hemen günceller, yazmayı debounce eder. Sessiz
// pencere içindeki ardışık düzenlemelerden yalnızca sonuncusu tek bir
// persistence çağrısı üretir.
func (s *Session) EditTitle(workspaceID, title string) {
	s.state.Apply(WorkspaceUpdated{WorkspaceID: workspaceID, Title: &title})
	s.debouncer.Edit(workspaceID, title)
}

func (s *Session) saveTitle(workspaceID, title string) error {
	return s.db.Model(&model.Workspace{}).
		Where("id = ?", workspaceID).
		Update("title", title).Error
}

// AddCollaborator optimistic olarak local listeye ekler, sonra üyeliği
// kalıcılaştırır. Oluşturulan kaydı döner; duplicate üyelikte hata
// gorm.ErrDuplicatedKey olarak gelir.
func (s *Session) AddCollaborator(workspaceID string, user model.User) (model.Collaborator, error) {
	s.state.Apply(CollaboratorAdded{WorkspaceID: workspaceID, User: user})

	collaborator := model.Collaborator{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		AvatarURL:   user.AvatarURL,
	}
	err := s.db.Create(&collaborator).Error
	return collaborator, err
}

// RemoveCollaborator kullanıcı id eşleşmesiyle local listeden çıkarır,
// sonra üyelik kaydını siler. Silinen satır sayısını döner.
func (s *Session) RemoveCollaborator(workspaceID, userID string) (int64, error) {
	s.state.Apply(CollaboratorRemoved{WorkspaceID: workspaceID, UserID: userID})

	result := s.db.
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&model.Collaborator{})
	return result.RowsAffected, result.Error
}

// DeleteWorkspace kalıcı siler; cascade folder/file/collaborator
// kayıtlarını da götürür.
func (s *Session) DeleteWorkspace(workspaceID string) error {
	s.state.Apply(WorkspaceRemoved{WorkspaceID: workspaceID})

	return s.db.Delete(&model.Workspace{}, "id = ?", workspaceID).Error
}

// Flush bekleyen başlık yazmasını hemen işler.
func (s *Session) Flush(workspaceID string) {
	s.debouncer.Flush(workspaceID)
}

// Close bekleyen tüm yazmaları işleyip oturumu kapatır.
func (s *Session) Close() {
	s.debouncer.Close()
}
