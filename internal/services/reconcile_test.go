package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
)

func storedImage(id uint, url string, order int, isHeader bool) models.PortfolioImage {
	fileID := "file-" + url
	return models.PortfolioImage{
		ID:           id,
		PortfolioID:  1,
		ImageURL:     url,
		FileID:       &fileID,
		DisplayOrder: order,
		IsHeader:     isHeader,
	}
}

func keepSlot(url string) dto.ImageSlot {
	return dto.ImageSlot{URL: url, IsNew: false}
}

func newSlot(fileIndex int) dto.ImageSlot {
	return dto.ImageSlot{IsNew: true, FileIndex: fileIndex}
}

func TestDiffImagePlanIdenticalPlanIsNoop(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
		storedImage(3, "c.webp", 2, false),
	}
	plan := []dto.ImageSlot{keepSlot("a.webp"), keepSlot("b.webp"), keepSlot("c.webp")}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Uploads)
	assert.Empty(t, diff.Moves)
	assert.Empty(t, diff.Removals)
}

func TestDiffImagePlanReorderOnly(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
		storedImage(3, "c.webp", 2, false),
	}
	// Desired order: C A B, C becomes the header.
	plan := []dto.ImageSlot{keepSlot("c.webp"), keepSlot("a.webp"), keepSlot("b.webp")}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Uploads)
	assert.Empty(t, diff.Removals)
	require.Len(t, diff.Moves, 3)

	assert.Equal(t, imageMove{ImageID: 3, DisplayOrder: 0, IsHeader: true}, diff.Moves[0])
	assert.Equal(t, imageMove{ImageID: 1, DisplayOrder: 1, IsHeader: false}, diff.Moves[1])
	assert.Equal(t, imageMove{ImageID: 2, DisplayOrder: 2, IsHeader: false}, diff.Moves[2])
}

func TestDiffImagePlanReplacementKeepsHeader(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}
	// A stays as header, B is replaced by new content D.
	plan := []dto.ImageSlot{keepSlot("a.webp"), newSlot(0)}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Moves)

	require.Len(t, diff.Removals, 1)
	assert.Equal(t, uint(2), diff.Removals[0].ID)

	require.Len(t, diff.Uploads, 1)
	assert.Equal(t, 1, diff.Uploads[0].Position)
	assert.Equal(t, 0, diff.Uploads[0].Slot.FileIndex)
}

func TestDiffImagePlanShrinksTail(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
		storedImage(3, "c.webp", 2, false),
	}
	plan := []dto.ImageSlot{keepSlot("a.webp")}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Uploads)
	assert.Empty(t, diff.Moves)
	require.Len(t, diff.Removals, 2)
	assert.Equal(t, uint(2), diff.Removals[0].ID)
	assert.Equal(t, uint(3), diff.Removals[1].ID)
}

func TestDiffImagePlanGrowsTail(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
	}
	plan := []dto.ImageSlot{keepSlot("a.webp"), newSlot(0), newSlot(1)}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Moves)
	assert.Empty(t, diff.Removals)
	require.Len(t, diff.Uploads, 2)
	assert.Equal(t, 1, diff.Uploads[0].Position)
	assert.Equal(t, 2, diff.Uploads[1].Position)
}

func TestDiffImagePlanEmptyPlanRemovesEverything(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}

	diff := diffImagePlan(current, []dto.ImageSlot{})

	assert.Empty(t, diff.Uploads)
	assert.Empty(t, diff.Moves)
	assert.Len(t, diff.Removals, 2)
}

func TestDiffImagePlanNewFlagReplacesRegardlessOfURL(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
	}
	// Same URL, but the slot is flagged new: content replaced.
	plan := []dto.ImageSlot{{URL: "a.webp", IsNew: true, FileIndex: 0}}

	diff := diffImagePlan(current, plan)

	require.Len(t, diff.Removals, 1)
	require.Len(t, diff.Uploads, 1)
	assert.Equal(t, 0, diff.Uploads[0].Position)
}

func TestDiffImagePlanURLMismatchFallsBackToReplacement(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}
	// Slot 1 names a URL that is not the stored one and is not flagged new.
	// A stale client plan after a concurrent edit produces this; the slot is
	// treated as a replacement rather than trusted.
	plan := []dto.ImageSlot{keepSlot("a.webp"), keepSlot("x.webp")}

	diff := diffImagePlan(current, plan)

	require.Len(t, diff.Removals, 1)
	assert.Equal(t, uint(2), diff.Removals[0].ID)
	require.Len(t, diff.Uploads, 1)
	assert.Equal(t, 1, diff.Uploads[0].Position)
}

// The header invariant: whatever the plan, position 0 and only position 0
// comes out flagged as header across moves and uploads.
func TestDiffImagePlanHeaderLandsAtPositionZero(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}
	plan := []dto.ImageSlot{newSlot(0), keepSlot("b.webp")}

	diff := diffImagePlan(current, plan)

	require.Len(t, diff.Uploads, 1)
	assert.Equal(t, 0, diff.Uploads[0].Position)

	// B keeps position 1 and must not become header.
	assert.Empty(t, diff.Moves)

	require.Len(t, diff.Removals, 1)
	assert.Equal(t, uint(1), diff.Removals[0].ID)
}

// Inserting new content in the middle must not misclassify the images after
// the insertion point; they are matched by URL and merely shifted.
func TestDiffImagePlanMiddleInsertShiftsTail(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}
	plan := []dto.ImageSlot{keepSlot("a.webp"), newSlot(0), keepSlot("b.webp")}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Removals)

	require.Len(t, diff.Uploads, 1)
	assert.Equal(t, 1, diff.Uploads[0].Position)

	require.Len(t, diff.Moves, 1)
	assert.Equal(t, imageMove{ImageID: 2, DisplayOrder: 2, IsHeader: false}, diff.Moves[0])
}

func TestDiffImagePlanPromotesSecondImageToHeader(t *testing.T) {
	current := []models.PortfolioImage{
		storedImage(1, "a.webp", 0, true),
		storedImage(2, "b.webp", 1, false),
	}
	plan := []dto.ImageSlot{keepSlot("b.webp"), keepSlot("a.webp")}

	diff := diffImagePlan(current, plan)

	assert.Empty(t, diff.Uploads)
	assert.Empty(t, diff.Removals)
	require.Len(t, diff.Moves, 2)
	assert.Equal(t, imageMove{ImageID: 2, DisplayOrder: 0, IsHeader: true}, diff.Moves[0])
	assert.Equal(t, imageMove{ImageID: 1, DisplayOrder: 1, IsHeader: false}, diff.Moves[1])
}
