package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/utils"
)

type fakeProfileRepo struct {
	mu        sync.Mutex
	profiles  map[string]*models.StrengthProfile
	order     []string
	technical map[string][]models.SkillEntry
	soft      map[string][]models.SkillEntry
	interests map[string][]models.CareerInterest

	createErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:  map[string]*models.StrengthProfile{},
		technical: map[string][]models.SkillEntry{},
		soft:      map[string][]models.SkillEntry{},
		interests: map[string][]models.CareerInterest{},
	}
}

func (r *fakeProfileRepo) CreateWithEntries(_ context.Context, p *models.StrengthProfile, technical, soft []models.SkillEntry, interests []models.CareerInterest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.profiles[p.ID] = &cp
	r.order = append(r.order, p.ID)
	r.technical[p.ID] = append([]models.SkillEntry(nil), technical...)
	r.soft[p.ID] = append([]models.SkillEntry(nil), soft...)
	r.interests[p.ID] = append([]models.CareerInterest(nil), interests...)
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*models.StrengthProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return r.withEntries(p), nil
}

func (r *fakeProfileRepo) LatestByUser(_ context.Context, userID string) (*models.StrengthProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.StrengthProfile
	for _, id := range r.order {
		p := r.profiles[id]
		if p.UserID != userID {
			continue
		}
		if latest == nil || !p.CreatedAt.Before(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, utils.ErrNotFound
	}
	return r.withEntries(latest), nil
}

func (r *fakeProfileRepo) withEntries(p *models.StrengthProfile) *models.StrengthProfile {
	cp := *p
	cp.TechnicalSkills = append([]models.SkillEntry(nil), r.technical[p.ID]...)
	cp.SoftSkills = append([]models.SkillEntry(nil), r.soft[p.ID]...)
	cp.CareerInterests = append([]models.CareerInterest(nil), r.interests[p.ID]...)
	return &cp
}

func (r *fakeProfileRepo) ListSkills(_ context.Context, profileID string, kind models.SkillKind) ([]models.SkillEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kind == models.SkillKindSoft {
		return append([]models.SkillEntry(nil), r.soft[profileID]...), nil
	}
	return append([]models.SkillEntry(nil), r.technical[profileID]...), nil
}

func (r *fakeProfileRepo) ListInterests(_ context.Context, profileID string) ([]models.CareerInterest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.CareerInterest(nil), r.interests[profileID]...), nil
}

func (r *fakeProfileRepo) AddSkills(_ context.Context, kind models.SkillKind, rows []models.SkillEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		if kind == models.SkillKindSoft {
			r.soft[row.StrengthProfileID] = append(r.soft[row.StrengthProfileID], row)
		} else {
			r.technical[row.StrengthProfileID] = append(r.technical[row.StrengthProfileID], row)
		}
	}
	return nil
}

func (r *fakeProfileRepo) AddInterests(_ context.Context, rows []models.CareerInterest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.interests[row.StrengthProfileID] = append(r.interests[row.StrengthProfileID], row)
	}
	return nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	rows      map[string][]models.UploadedDocument
	upsertErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{rows: map[string][]models.UploadedDocument{}}
}

func (r *fakeDocumentRepo) Upsert(_ context.Context, d *models.UploadedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	docs := r.rows[d.StrengthProfileID]
	for i := range docs {
		if docs[i].StoragePath == d.StoragePath {
			docs[i] = *d
			return nil
		}
	}
	r.rows[d.StrengthProfileID] = append(docs, *d)
	return nil
}

func (r *fakeDocumentRepo) ListByProfile(_ context.Context, profileID string) ([]models.UploadedDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.UploadedDocument(nil), r.rows[profileID]...), nil
}

type fakeAnalysisRepo struct {
	mu          sync.Mutex
	rows        []models.AIAnalysis
	insertErr   error
	latestCalls int
}

func (r *fakeAnalysisRepo) Insert(_ context.Context, a *models.AIAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.rows = append(r.rows, *a)
	return nil
}

func (r *fakeAnalysisRepo) LatestByUser(_ context.Context, userID string) (*models.AIAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latestCalls++
	var latest *models.AIAnalysis
	for i := range r.rows {
		row := &r.rows[i]
		if row.UserID != userID {
			continue
		}
		if latest == nil || !row.CreatedAt.Before(latest.CreatedAt) {
			latest = row
		}
	}
	if latest == nil {
		return nil, utils.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

type fakeSubmissionRepo struct {
	mu      sync.Mutex
	rows    map[string]models.Submission
	history []models.SubmissionState
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{rows: map[string]models.Submission{}}
}

func (r *fakeSubmissionRepo) Insert(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	return nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	r.history = append(r.history, s.State)
	return nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &row, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string // objectName -> contentType
	failOn  string            // fail any objectName containing this
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string]string{}}
}

func (u *fakeUploader) Upload(_ context.Context, objectName, contentType string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failOn != "" && strings.Contains(objectName, u.failOn) {
		return "", errBlobStore
	}
	u.objects[objectName] = contentType
	return objectName, nil
}

var errBlobStore = &blobStoreError{}

type blobStoreError struct{}

func (e *blobStoreError) Error() string { return "blob store unreachable" }

type fakeLLM struct {
	mu         sync.Mutex
	response   string
	err        error
	lastSystem string
	lastPrompt string
	calls      int
}

func (f *fakeLLM) GenerateJSON(_ context.Context, system, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }
