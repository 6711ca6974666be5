package repositories

import (
	"errors"

	"task-management-api/models"

	"gorm.io/gorm"
)

// TagRepository resolves tag names to persisted rows. Methods take the
// caller's *gorm.DB so they can run inside an enclosing transaction.
type TagRepository interface {
	GetOrCreate(db *gorm.DB, names []string) ([]models.Tag, error)
	GetByName(db *gorm.DB, name string) (*models.Tag, error)
	GetByNames(db *gorm.DB, names []string) ([]models.Tag, error)
	GetAll(db *gorm.DB) ([]models.Tag, error)
}

type tagRepository struct{}

func NewTagRepository() TagRepository {
	return &tagRepository{}
}

// GetOrCreate fetches the rows matching names and inserts the missing ones,
// returning tags in input order. Names must already be normalized. Each
// insert runs in its own nested transaction (a savepoint when the caller is
// already in one), so losing the unique-constraint race to a concurrent
// insert does not abort the caller's transaction; the winner's row is
// re-read instead.
func (r *tagRepository) GetOrCreate(db *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}

	existing, err := r.GetByNames(db, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Tag, len(existing))
	for _, tag := range existing {
		byName[tag.Name] = tag
	}

	for _, name := range names {
		tag, ok := byName[name]
		if !ok {
			tag = models.Tag{Name: name}
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&tag).Error
			})
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				var winner *models.Tag
				winner, err = r.GetByName(db, name)
				if err == nil {
					tag = *winner
				}
			}
			if err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (r *tagRepository) GetByName(db *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByNames(db *gorm.DB, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Where("name IN ?", names).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetAll(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name asc").Find(&tags).Error
	return tags, err
}
