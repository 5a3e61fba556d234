package mentors

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	mentors map[int]Mentor
	nextID  int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		mentors: make(map[int]Mentor),
		nextID:  1,
	}
}

func (r *repoMock) List(_ context.Context) ([]Mentor, error) {
	var found []Mentor
	for _, m := range r.mentors {
		if m.Especialidades == nil {
			m.Especialidades = []string{}
		}
		found = append(found, m)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})
	return found, nil
}

func (r *repoMock) Add(_ context.Context, mentor Mentor) (*Mentor, error) {
	mentor.ID = r.nextID
	mentor.UpdatedAt = time.Now()
	if mentor.Especialidades == nil {
		mentor.Especialidades = []string{}
	}
	r.nextID++
	r.mentors[mentor.ID] = mentor
	return &mentor, nil
}

func (r *repoMock) Update(_ context.Context, mentor Mentor) error {
	if _, ok := r.mentors[mentor.ID]; !ok {
		return ErrMentorNotFound
	}
	mentor.UpdatedAt = time.Now()
	r.mentors[mentor.ID] = mentor
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.mentors[id]; !ok {
		return ErrMentorNotFound
	}
	delete(r.mentors, id)
	return nil
}

func (r *repoMock) Count() int {
	return len(r.mentors)
}
