package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ repository.UserRepository      = userRepo{}
	_ repository.ImportRunRepository = importRunRepo{}
)

// Users repositorio de usuarios.
func (db *DB) Users() repository.UserRepository { return userRepo{db} }

// ImportRuns repositorio de corridas de importación.
func (db *DB) ImportRuns() repository.ImportRunRepository { return importRunRepo{db} }

type userRepo struct{ db *DB }

func (r userRepo) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.st.users[user.ID] = *user
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type importRunRepo struct{ db *DB }

func (r importRunRepo) Create(_ context.Context, run *entity.ImportRun) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.st.runs[run.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.st.runs[run.ID] = *run
	return nil
}

func (r importRunRepo) GetByID(_ context.Context, id string) (*entity.ImportRun, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	run, ok := r.db.st.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (r importRunRepo) List(_ context.Context, limit, offset int) ([]*entity.ImportRun, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := make([]*entity.ImportRun, 0, len(r.db.st.runs))
	for _, run := range r.db.st.runs {
		run := run
		all = append(all, &run)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartedAt.After(all[j].StartedAt) })
	if offset >= len(all) {
		return []*entity.ImportRun{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}
