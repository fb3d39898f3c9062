package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/models"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/utils"
)

type SubmissionOutcome string

const (
	// OutcomeCompleted: profile, documents, and analysis are all saved.
	OutcomeCompleted SubmissionOutcome = "completed"
	// OutcomeAnalysisPending: the profile (and whatever documents made it)
	// is durably saved but no analysis exists yet; the caller may retry the
	// analysis stage alone with the retry token.
	OutcomeAnalysisPending SubmissionOutcome = "analysis_pending"
)

type DocumentInput struct {
	FileName    string
	Size        int64
	ContentType string
	Content     io.Reader
}

type SubmissionInput struct {
	WorkStyle       string
	TechnicalSkills []string
	SoftSkills      []string
	CareerInterests []string
	Documents       []DocumentInput
}

type SubmissionResult struct {
	SubmissionID string            `json:"submission_id"`
	ProfileID    string            `json:"profile_id"`
	AnalysisID   string            `json:"analysis_id,omitempty"`
	Outcome      SubmissionOutcome `json:"outcome"`
	RetryToken   string            `json:"retry_token,omitempty"`
	Reason       string            `json:"reason,omitempty"`
}

type SubmissionService interface {
	Submit(ctx context.Context, userID string, in SubmissionInput) (*SubmissionResult, error)
	// RetryAnalysis re-runs only the analysis stage for an already saved
	// profile. Safe to call any number of times; each success appends a row.
	RetryAnalysis(ctx context.Context, userID, profileID string) (*models.AIAnalysis, error)
	Status(ctx context.Context, userID, submissionID string) (*models.Submission, error)
}

type submissionService struct {
	submissions pgrepo.SubmissionRepository
	profiles    ProfileService
	documents   DocumentService
	requester   AnalysisRequester
	store       AnalysisStore
	log         *logrus.Logger
}

func NewSubmissionService(
	submissions pgrepo.SubmissionRepository,
	profiles ProfileService,
	documents DocumentService,
	requester AnalysisRequester,
	store AnalysisStore,
	log *logrus.Logger,
) SubmissionService {
	if log == nil {
		log = logrus.New()
	}
	return &submissionService{
		submissions: submissions,
		profiles:    profiles,
		documents:   documents,
		requester:   requester,
		store:       store,
		log:         log,
	}
}

func (s *submissionService) Submit(ctx context.Context, userID string, in SubmissionInput) (*SubmissionResult, error) {
	const op = "SubmissionService.Submit"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     models.SubmissionStateIntake,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record submission", err)
	}

	// Intake -> ProfileSaved. Any failure here is terminal for the whole
	// submission; nothing downstream is attempted.
	profile, err := s.profiles.Create(ctx, userID, in.WorkStyle, in.TechnicalSkills, in.SoftSkills, in.CareerInterests)
	if err != nil {
		sub.Failure = err.Error()
		s.transition(ctx, sub, models.SubmissionStateIntakeFailed)
		return nil, err
	}
	sub.StrengthProfileID = &profile.ID
	s.transition(ctx, sub, models.SubmissionStateProfileSaved)

	// ProfileSaved -> DocumentsSaved. Uploads run concurrently; one failure
	// stops the pipeline here, but the profile and the uploads that succeeded
	// stay committed.
	if err := s.uploadAll(ctx, userID, profile.ID, in.Documents); err != nil {
		sub.Failure = err.Error()
		s.transition(ctx, sub, models.SubmissionStateProfileSaved)
		return &SubmissionResult{
			SubmissionID: sub.ID,
			ProfileID:    profile.ID,
			Outcome:      OutcomeAnalysisPending,
			RetryToken:   profile.ID,
			Reason:       "document upload failed: " + err.Error(),
		}, nil
	}
	s.transition(ctx, sub, models.SubmissionStateDocumentsSaved)

	// DocumentsSaved -> AnalysisRequested -> AnalysisSaved. Failure here does
	// not undo anything; the caller gets a retry token instead.
	s.transition(ctx, sub, models.SubmissionStateAnalysisRequested)
	analysis, err := s.runAnalysis(ctx, userID, profile.ID)
	if err != nil {
		sub.Failure = err.Error()
		s.transition(ctx, sub, models.SubmissionStateAnalysisRequested)
		s.log.WithFields(logrus.Fields{
			"submission_id": sub.ID,
			"profile_id":    profile.ID,
		}).WithError(err).Warn("analysis stage failed, data saved")
		return &SubmissionResult{
			SubmissionID: sub.ID,
			ProfileID:    profile.ID,
			Outcome:      OutcomeAnalysisPending,
			RetryToken:   profile.ID,
			Reason:       err.Error(),
		}, nil
	}

	sub.Failure = ""
	s.transition(ctx, sub, models.SubmissionStateAnalysisSaved)
	return &SubmissionResult{
		SubmissionID: sub.ID,
		ProfileID:    profile.ID,
		AnalysisID:   analysis.ID,
		Outcome:      OutcomeCompleted,
	}, nil
}

func (s *submissionService) RetryAnalysis(ctx context.Context, userID, profileID string) (*models.AIAnalysis, error) {
	const op = "SubmissionService.RetryAnalysis"

	if userID == "" || profileID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and profile_id are required", nil)
	}
	if _, err := s.profiles.GetByID(ctx, userID, profileID); err != nil {
		return nil, err
	}
	return s.runAnalysis(ctx, userID, profileID)
}

func (s *submissionService) Status(ctx context.Context, userID, submissionID string) (*models.Submission, error) {
	const op = "SubmissionService.Status"

	if userID == "" || submissionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and submission_id are required", nil)
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "submission not found", err)
	}
	if sub.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "submission not found", nil)
	}
	return sub, nil
}

func (s *submissionService) runAnalysis(ctx context.Context, userID, profileID string) (*models.AIAnalysis, error) {
	data, err := s.requester.Request(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.store.Save(ctx, userID, profileID, data)
}

// uploadAll fans the uploads out; there is no ordering between documents of
// one submission. The first error wins, successful uploads stay committed.
func (s *submissionService) uploadAll(ctx context.Context, userID, profileID string, docs []DocumentInput) error {
	if len(docs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(docs))

	for _, d := range docs {
		wg.Add(1)
		go func(d DocumentInput) {
			defer wg.Done()
			if _, err := s.documents.Upload(ctx, userID, profileID, d.FileName, d.Size, d.ContentType, d.Content); err != nil {
				errs <- err
			}
		}(d)
	}

	wg.Wait()
	close(errs)
	return <-errs
}

// transition stamps the new state. Losing a status update must not fail the
// pipeline, so repository errors are only logged.
func (s *submissionService) transition(ctx context.Context, sub *models.Submission, state models.SubmissionState) {
	sub.State = state
	sub.UpdatedAt = time.Now().UTC()
	if err := s.submissions.Update(ctx, sub); err != nil {
		s.log.WithFields(logrus.Fields{
			"submission_id": sub.ID,
			"state":         state,
		}).WithError(err).Error("failed to record submission state")
	}
}
