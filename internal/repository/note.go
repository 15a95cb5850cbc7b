package repository

import (
	"path/filepath"
	"time"

	"github.com/Nickzanarak/Edu/internal/domain"
)

// FileNoteRepository stores one JSON file per (user, file) pair under
// <dataDir>/notes/<user>/<file>.json.
type FileNoteRepository struct {
	dataDir string
}

func NewFileNoteRepository(dataDir string) *FileNoteRepository {
	return &FileNoteRepository{dataDir: dataDir}
}

var _ domain.NoteRepository = (*FileNoteRepository)(nil)

func (r *FileNoteRepository) notePath(userID, fileID string) string {
	return filepath.Join(r.dataDir, "notes", sanitizeComponent(userID), sanitizeComponent(fileID)+".json")
}

// GetNote returns the stored note, or an empty note when none exists.
func (r *FileNoteRepository) GetNote(userID, fileID string) (*domain.Note, error) {
	note := &domain.Note{}
	if err := readJSONFile(r.notePath(userID, fileID), note); err != nil {
		return nil, err
	}
	return note, nil
}

func (r *FileNoteRepository) PutNote(userID, fileID, content string) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{Content: content, UpdatedAt: &now}
	if err := writeJSONFile(r.notePath(userID, fileID), note); err != nil {
		return nil, err
	}
	return note, nil
}
