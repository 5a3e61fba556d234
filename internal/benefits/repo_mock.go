package benefits

import (
	"context"
	"sort"
)

type repoMock struct {
	benefits map[int]Benefit
	nextID   int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		benefits: make(map[int]Benefit),
		nextID:   1,
	}
}

func (r *repoMock) List(_ context.Context, category Category) ([]Benefit, error) {
	var found []Benefit
	for _, b := range r.benefits {
		if b.Category == category.String() {
			found = append(found, b)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})
	return found, nil
}

func (r *repoMock) Add(_ context.Context, benefit Benefit) (*Benefit, error) {
	benefit.ID = r.nextID
	r.nextID++
	r.benefits[benefit.ID] = benefit
	return &benefit, nil
}

func (r *repoMock) Update(_ context.Context, benefit Benefit) error {
	existing, ok := r.benefits[benefit.ID]
	if !ok || existing.Category != benefit.Category {
		return ErrBenefitNotFound
	}
	r.benefits[benefit.ID] = benefit
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int, category Category) error {
	existing, ok := r.benefits[id]
	if !ok || existing.Category != category.String() {
		return ErrBenefitNotFound
	}
	delete(r.benefits, id)
	return nil
}

func (r *repoMock) Count() int {
	return len(r.benefits)
}
