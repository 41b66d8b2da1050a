package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/job-tracker/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetAll(ctx context.Context) ([]entities.Job, error) {

	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).Order("id").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByID returns nil without an error when the job does not exist.
func (repo *Jobs) GetByID(ctx context.Context, id int) (*entities.Job, error) {

	var job entities.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Update writes every column of the job, zero values included.
func (repo *Jobs) Update(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Save(job).Error
}

func (repo *Jobs) UpdateResume(ctx context.Context, id int, path string) (bool, error) {
	res := repo.db.WithContext(ctx).Model(&entities.Job{}).Where("id = ?", id).
		Update("resume", path)
	return res.RowsAffected > 0, res.Error
}

func (repo *Jobs) Remove(ctx context.Context, id int) (bool, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.Job{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (repo *Jobs) Count(ctx context.Context) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&entities.Job{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Jobs) CountByStatus(ctx context.Context) (map[entities.Status]int64, error) {

	var rows []struct {
		Status entities.Status
		Count  int64
	}
	if err := repo.db.WithContext(ctx).Model(&entities.Job{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entities.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (repo *Jobs) GetWithDeadlineFrom(ctx context.Context, from time.Time) ([]entities.Job, error) {

	var jobs []entities.Job
	if err := repo.db.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline >= ?", from).
		Order("deadline, id").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
