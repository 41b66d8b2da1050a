package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asaskevich/EventBus"
	"github.com/gabriel-vasile/mimetype"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	log "github.com/sirupsen/logrus"
)

const fallbackExtension = ".bin"

// Resumes keeps uploaded resumes as resume_<jobID><ext> files in one directory.
type Resumes struct {
	basePath string
}

func NewResumes(basePath string) (*Resumes, error) {
	info, err := os.Stat(basePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(basePath, 0755); mkErr != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", basePath, mkErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %s exists but is not a directory", basePath)
	}

	return &Resumes{basePath: basePath}, nil
}

// Subscribe removes the stored resume whenever its job is deleted.
func (r *Resumes) Subscribe(bus EventBus.Bus) error {
	return bus.Subscribe(events.JobDeletedTopic, r.onJobDeleted)
}

func (r *Resumes) onJobDeleted(event events.JobDeleted) {
	if err := r.Remove(event.JobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to remove resume: %v", err)
	}
}

func (r *Resumes) BasePath() string {
	return r.basePath
}

// Save writes the resume and returns its path. The extension follows the detected
// content type. Resumes stored earlier under another extension are kept until Prune.
func (r *Resumes) Save(ctx context.Context, jobID int, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	extension := DetectExtension(content)
	path := r.pathFor(jobID, extension)

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write resume %s: %w", path, err)
	}
	return path, nil
}

// Prune removes the job's resumes other than keep.
func (r *Resumes) Prune(jobID int, keep string) error {
	files, err := r.files(jobID)
	if err != nil {
		return err
	}

	var errs []error
	for _, file := range files {
		if file == keep {
			continue
		}
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to prune resumes of job %d: %w", jobID, errors.Join(errs...))
	}
	return nil
}

// Discard removes a single resume file written by Save.
func (r *Resumes) Discard(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to discard resume %s: %w", path, err)
	}
	return nil
}

// Remove deletes every stored resume of the job.
func (r *Resumes) Remove(jobID int) error {
	files, err := r.files(jobID)
	if err != nil {
		return err
	}

	var errs []error
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to remove resumes of job %d: %w", jobID, errors.Join(errs...))
	}
	return nil
}

func (r *Resumes) files(jobID int) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.basePath, "resume_"+strconv.Itoa(jobID)+".*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes of job %d: %w", jobID, err)
	}
	return files, nil
}

func (r *Resumes) pathFor(jobID int, extension string) string {
	return filepath.Join(r.basePath, fmt.Sprintf("resume_%d%s", jobID, extension))
}

// DetectExtension sniffs the content type and returns the matching file extension.
func DetectExtension(content []byte) string {
	extension := mimetype.Detect(content).Extension()
	if extension == "" {
		return fallbackExtension
	}
	return extension
}
