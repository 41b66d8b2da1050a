package tests

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/api"
	"github.com/maxaizer/job-tracker/internal/clients/adzuna"
	"github.com/maxaizer/job-tracker/internal/clients/jooble"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/keywords"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/services"
	"github.com/maxaizer/job-tracker/internal/storage"
	"github.com/maxaizer/job-tracker/internal/textextract"
	log "github.com/sirupsen/logrus"
)

var (
	dbCtx     *repositories.DbContext
	server    *httptest.Server
	upstream  *fakeUpstream
	uploadDir string
	cleanup   []func()
)

func upEnvironment(workDir string) {

	uploadDir = filepath.Join(workDir, "uploads")
	os.Setenv("DB_CONNECTION_STRING", filepath.Join(workDir, "testdatabase.db"))
	os.Setenv("UPLOAD_DIR", uploadDir)
	cfg := config.Get()

	var err error
	dbCtx, err = repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("could not create db context: %s", err)
	}

	err = dbCtx.Migrate()
	if err != nil {
		log.Fatalf("could not migrate db: %s", err)
	}

	bus := EventBus.New()
	jobs := repositories.NewJobsRepository(dbCtx.DB)

	resumeFiles, err := storage.NewResumes(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("could not create resume storage: %s", err)
	}
	if err = resumeFiles.Subscribe(bus); err != nil {
		log.Fatalf("could not subscribe resume storage: %s", err)
	}

	extractor, err := keywords.NewExtractor()
	if err != nil {
		log.Fatalf("could not create keyword extractor: %s", err)
	}

	upstream = newFakeUpstream()
	joobleServer := upstream.joobleServer()
	adzunaServer := upstream.adzunaServer()
	cleanup = append(cleanup, joobleServer.Close, adzunaServer.Close)

	joobleClient := jooble.NewClient(joobleAPIKey)
	joobleClient.SetBaseURL(joobleServer.URL + "/")
	adzunaClient := adzuna.NewClient("adzuna-test-id", adzunaAppKey)
	adzunaClient.SetBaseURL(adzunaServer.URL)

	handler := api.NewHandler(
		services.NewJobService(jobs, resumeFiles, bus),
		services.NewResumeService(jobs, textextract.NewExtractor(), extractor),
		services.NewSearchService(joobleClient, adzunaClient, time.Minute),
	)
	server = httptest.NewServer(handler.Router())
	cleanup = append(cleanup, server.Close)
}

func downEnvironment() {
	for _, fn := range cleanup {
		fn()
	}
	_ = dbCtx.Close()
}

func TestMain(m *testing.M) {

	err := os.Chdir("../") //project root to resolve correctly relative paths in code
	if err != nil {
		log.Fatal(err)
	}

	workDir, err := os.MkdirTemp("", "job-tracker-integration")
	if err != nil {
		log.Fatal(err)
	}

	upEnvironment(workDir)

	code := m.Run()

	downEnvironment()
	_ = os.RemoveAll(workDir)

	os.Exit(code)
}

func clearDb() {
	dbCtx.DB.Exec("DELETE FROM jobs WHERE TRUE")

	files, _ := filepath.Glob(filepath.Join(uploadDir, "resume_*"))
	for _, file := range files {
		_ = os.Remove(file)
	}
}
