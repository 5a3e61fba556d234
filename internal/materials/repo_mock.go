package materials

import (
	"context"
	"sort"
)

type repoMock struct {
	materials map[int]Material
	nextID    int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		materials: make(map[int]Material),
		nextID:    1,
	}
}

func (r *repoMock) List(_ context.Context) ([]Material, error) {
	var found []Material
	for _, m := range r.materials {
		found = append(found, m)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})
	return found, nil
}

func (r *repoMock) Add(_ context.Context, material Material) (*Material, error) {
	material.ID = r.nextID
	r.nextID++
	r.materials[material.ID] = material
	return &material, nil
}

func (r *repoMock) Update(_ context.Context, material Material) error {
	if _, ok := r.materials[material.ID]; !ok {
		return ErrMaterialNotFound
	}
	r.materials[material.ID] = material
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.materials[id]; !ok {
		return ErrMaterialNotFound
	}
	delete(r.materials, id)
	return nil
}

func (r *repoMock) Count() int {
	return len(r.materials)
}
