package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/utils"
)

func TestProfileServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		workStyle string
		technical []string
		soft      []string
		interests []string
	}{
		{
			name:      "unknown work style",
			workStyle: "chaotic",
		},
		{
			name:      "more technical skills than the cap",
			technical: []string{"Go", "Rust", "SQL", "Docker", "Kubernetes", "Terraform"},
		},
		{
			name:      "case-insensitive duplicate within one call",
			technical: []string{"React", "react"},
		},
		{
			name: "empty skill name",
			soft: []string{"Communication", "  "},
		},
		{
			name:      "over-long interest name",
			interests: []string{strings.Repeat("x", 65)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProfileRepo()
			svc := NewProfileService(repo, newFakeDocumentRepo(), 5)

			_, err := svc.Create(context.Background(), "user-1", tt.workStyle, tt.technical, tt.soft, tt.interests)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "expected INVALID_ARGUMENT, got %v", err)
			assert.Empty(t, repo.profiles, "no row may be written for a rejected submission")
		})
	}
}

func TestProfileServiceCreatePreservesOrder(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newFakeDocumentRepo(), 5)

	p, err := svc.Create(context.Background(), "user-1", "collaborative",
		[]string{"React", "TypeScript"}, nil, []string{"Product Management"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.True(t, p.Completed)
	require.NotNil(t, p.WorkStyle)
	assert.Equal(t, models.WorkStyleCollaborative, *p.WorkStyle)

	got, err := svc.GetLatest(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got.TechnicalSkills, 2)
	assert.Equal(t, "React", got.TechnicalSkills[0].SkillName)
	assert.Equal(t, 1, got.TechnicalSkills[0].OrderIndex)
	assert.Equal(t, "TypeScript", got.TechnicalSkills[1].SkillName)
	assert.Equal(t, 2, got.TechnicalSkills[1].OrderIndex)
	assert.Empty(t, got.SoftSkills)
	require.Len(t, got.CareerInterests, 1)
	assert.Equal(t, "Product Management", got.CareerInterests[0].InterestName)
}

func TestProfileServiceCreateUnsetWorkStyle(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newFakeDocumentRepo(), 5)

	p, err := svc.Create(context.Background(), "user-1", "", []string{"Go"}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, p.WorkStyle)
}

func TestProfileServiceAddSkills(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newFakeDocumentRepo(), 5)

	p, err := svc.Create(ctx, "user-1", "", []string{"Go", "SQL"}, nil, nil)
	require.NoError(t, err)

	t.Run("appends after the stored entries", func(t *testing.T) {
		require.NoError(t, svc.AddSkills(ctx, p.ID, models.SkillKindTechnical, []string{"Docker"}))
		rows, err := repo.ListSkills(ctx, p.ID, models.SkillKindTechnical)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Docker", rows[2].SkillName)
		assert.Equal(t, 3, rows[2].OrderIndex)
	})

	t.Run("rejects a duplicate of a stored name", func(t *testing.T) {
		err := svc.AddSkills(ctx, p.ID, models.SkillKindTechnical, []string{"go"})
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	})

	t.Run("rejects crossing the cap with stored entries counted", func(t *testing.T) {
		err := svc.AddSkills(ctx, p.ID, models.SkillKindTechnical, []string{"A", "B", "C"})
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	})

	t.Run("soft skills are independent of technical", func(t *testing.T) {
		require.NoError(t, svc.AddSkills(ctx, p.ID, models.SkillKindSoft, []string{"Go"}))
	})
}

func TestProfileServiceGetLatestPicksNewestProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, newFakeDocumentRepo(), 5)

	_, err := svc.Create(ctx, "user-1", "", []string{"Go"}, nil, nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "user-1", "", []string{"Rust"}, nil, nil)
	require.NoError(t, err)

	got, err := svc.GetLatest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestProfileServiceGetLatestNotFound(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newFakeDocumentRepo(), 5)

	_, err := svc.GetLatest(context.Background(), "nobody")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestProfileServiceGetByIDScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo(), newFakeDocumentRepo(), 5)

	p, err := svc.Create(ctx, "user-1", "", []string{"Go"}, nil, nil)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, "user-2", p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	got, err := svc.GetByID(ctx, "user-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
