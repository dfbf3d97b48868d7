package services

import (
	"github.com/devanpatel28/codegrin-backend/internal/models"
	"github.com/devanpatel28/codegrin-backend/internal/services/dto"
)

// imageUpload is a planned insert: the slot's file payload goes to remote
// storage and a new row lands at Position.
type imageUpload struct {
	Slot     dto.ImageSlot
	Position int
}

// imageMove rewrites placement of an existing row without touching its file.
type imageMove struct {
	ImageID      uint
	DisplayOrder int
	IsHeader     bool
}

// imageDiff is the outcome of comparing the stored image sequence against
// the desired plan. Removals keep their full rows so callers can collect
// file handles for post-commit remote cleanup.
type imageDiff struct {
	Uploads  []imageUpload
	Moves    []imageMove
	Removals []models.PortfolioImage
}

// diffImagePlan computes the minimal work turning the stored image set into
// the desired plan. Slot i of the plan describes the image that must end up
// at display_order i, header iff i is 0.
//
// Kept slots (IsNew false) are matched to stored rows by URL, so reordering
// never re-uploads content. A matched row already sitting at the slot's
// position is a no-op; otherwise only its placement is rewritten. Slots
// flagged new upload their file payload at the slot's position. A kept slot
// whose URL matches no stored row is treated as an upload too; a stale plan
// submitted after a concurrent edit can produce this, and dropping the slot
// would silently shrink the sequence. Stored rows no slot claims are
// removed.
func diffImagePlan(current []models.PortfolioImage, plan []dto.ImageSlot) imageDiff {
	var diff imageDiff

	// URLs can repeat across rows; claim matches front to back.
	byURL := make(map[string][]int, len(current))
	for idx, image := range current {
		byURL[image.ImageURL] = append(byURL[image.ImageURL], idx)
	}
	claimed := make([]bool, len(current))

	for i, slot := range plan {
		if slot.IsNew {
			diff.Uploads = append(diff.Uploads, imageUpload{Slot: slot, Position: i})
			continue
		}

		indexes := byURL[slot.URL]
		if len(indexes) == 0 {
			diff.Uploads = append(diff.Uploads, imageUpload{Slot: slot, Position: i})
			continue
		}
		idx := indexes[0]
		byURL[slot.URL] = indexes[1:]
		claimed[idx] = true

		image := current[idx]
		if image.DisplayOrder == i && image.IsHeader == (i == 0) {
			continue
		}
		diff.Moves = append(diff.Moves, imageMove{
			ImageID:      image.ID,
			DisplayOrder: i,
			IsHeader:     i == 0,
		})
	}

	for idx, image := range current {
		if !claimed[idx] {
			diff.Removals = append(diff.Removals, image)
		}
	}

	return diff
}
