package services

import (
	"task-management-api/models"
	"task-management-api/repositories"

	"gorm.io/gorm"
)

// TagService exposes the read side of the tag vocabulary. Tags come into
// existence through task create/update, never through this service.
type TagService interface {
	GetTags() ([]models.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	tagRepo repositories.TagRepository
}

func NewTagService(db *gorm.DB, tagRepo repositories.TagRepository) TagService {
	return &tagService{
		db:      db,
		tagRepo: tagRepo,
	}
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll(s.db)
}
