package assemble

import (
	"context"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// PhotoRenderer turns photo files into upload payloads.
type PhotoRenderer interface {
	Encode(ctx context.Context, path string) (string, error)
	Collage(ctx context.Context, paths []string) (string, error)
}

// PhotoPlan lists photos kept as they are and groups merged into one collage.
type PhotoPlan struct {
	Singles []string
	Packs   [][]string
}

func (p PhotoPlan) Len() int {
	return len(p.Singles) + len(p.Packs)
}

// OrderPhotos puts the thumbnail first and sorts the rest by normalized name.
func OrderPhotos(names []string, thumbnail string) []string {
	rest := make([]string, 0, len(names))
	hasThumbnail := false
	for _, n := range names {
		if n == thumbnail && !hasThumbnail {
			hasThumbnail = true
			continue
		}
		rest = append(rest, n)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return norm.NFC.String(rest[i]) < norm.NFC.String(rest[j])
	})
	if !hasThumbnail {
		return rest
	}
	return append([]string{thumbnail}, rest...)
}

// PlanPhotos caps the count at maxPhotos by merging the tail into packs of
// packSize. Each pack replaces packSize photos with one, so
// ceil((n-max)/(packSize-1)) slots are reserved for packs.
func PlanPhotos(ordered []string, maxPhotos, packSize int) PhotoPlan {
	n := len(ordered)
	if n <= maxPhotos || packSize < 2 {
		return PhotoPlan{Singles: ordered}
	}

	reserved := (n - maxPhotos + packSize - 2) / (packSize - 1)
	keep := maxPhotos - reserved
	if keep < 0 {
		keep = 0
	}

	plan := PhotoPlan{Singles: ordered[:keep]}
	for rest := ordered[keep:]; len(rest) > 0; {
		size := packSize
		if len(rest) < size {
			size = len(rest)
		}
		plan.Packs = append(plan.Packs, rest[:size])
		rest = rest[size:]
	}
	return plan
}
