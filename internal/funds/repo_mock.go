package funds

import (
	"context"
	"sort"
	"time"
)

type repoMock struct {
	funds  map[int]Fund
	nextID int
}

func NewMockRepo() *repoMock {
	return &repoMock{
		funds:  make(map[int]Fund),
		nextID: 1,
	}
}

func (r *repoMock) List(_ context.Context) ([]Fund, error) {
	var found []Fund
	for _, f := range r.funds {
		found = append(found, f)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})
	return found, nil
}

func (r *repoMock) Add(_ context.Context, fund Fund) (*Fund, error) {
	fund.ID = r.nextID
	fund.UpdatedAt = time.Now()
	r.nextID++
	r.funds[fund.ID] = fund
	return &fund, nil
}

func (r *repoMock) Update(_ context.Context, fund Fund) error {
	if _, ok := r.funds[fund.ID]; !ok {
		return ErrFundNotFound
	}
	fund.UpdatedAt = time.Now()
	r.funds[fund.ID] = fund
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.funds[id]; !ok {
		return ErrFundNotFound
	}
	delete(r.funds, id)
	return nil
}

func (r *repoMock) Count() int {
	return len(r.funds)
}
