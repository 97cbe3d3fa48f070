package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"prodtrack/internal/model"
	"prodtrack/internal/repository"

	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests.

// ── Variants ─────────────────────────────────────────────────────────────────

type stubVariantRepo struct {
	variants []model.Variant
	nextID   uint
}

func newStubVariantRepo() *stubVariantRepo { return &stubVariantRepo{} }

func (r *stubVariantRepo) add(name string, order int) model.Variant {
	r.nextID++
	v := model.Variant{ID: r.nextID, Name: name, DisplayOrder: order}
	r.variants = append(r.variants, v)
	return v
}

func (r *stubVariantRepo) Create(_ context.Context, v *model.Variant) error {
	r.nextID++
	v.ID = r.nextID
	r.variants = append(r.variants, *v)
	return nil
}

func (r *stubVariantRepo) List(_ context.Context) ([]model.Variant, error) {
	out := make([]model.Variant, len(r.variants))
	copy(out, r.variants)
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *stubVariantRepo) FindByID(_ context.Context, id uint) (*model.Variant, error) {
	for i := range r.variants {
		if r.variants[i].ID == id {
			v := r.variants[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVariantRepo) FindByName(_ context.Context, name string) (*model.Variant, error) {
	for i := range r.variants {
		if strings.EqualFold(r.variants[i].Name, name) {
			v := r.variants[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVariantRepo) Update(_ context.Context, v *model.Variant) error {
	for i := range r.variants {
		if r.variants[i].ID == v.ID {
			r.variants[i] = *v
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVariantRepo) Delete(_ context.Context, id uint) error {
	for i := range r.variants {
		if r.variants[i].ID == id {
			r.variants = append(r.variants[:i], r.variants[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubVariantRepo) NextDisplayOrder(_ context.Context) (int, error) {
	next := 0
	for _, v := range r.variants {
		if v.DisplayOrder >= next {
			next = v.DisplayOrder + 1
		}
	}
	return next, nil
}

var _ repository.VariantRepository = (*stubVariantRepo)(nil)

// ── Users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users  []model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{} }

func (r *stubUserRepo) add(username, role string) model.User {
	r.nextID++
	u := model.User{ID: r.nextID, Username: username, Role: role, CreatedAt: time.Now()}
	r.users = append(r.users, u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users = append(r.users, *u)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = *u
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Access grants ────────────────────────────────────────────────────────────

type stubAccessRepo struct {
	rows []model.ManagerVariantAccess
}

func newStubAccessRepo() *stubAccessRepo { return &stubAccessRepo{} }

func (r *stubAccessRepo) grant(userID, variantID uint) {
	r.rows = append(r.rows, model.ManagerVariantAccess{UserID: userID, VariantID: variantID})
}

func (r *stubAccessRepo) ListVariantIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for _, row := range r.rows {
		if row.UserID == userID {
			ids = append(ids, row.VariantID)
		}
	}
	return ids, nil
}

func (r *stubAccessRepo) Replace(_ context.Context, userID uint, variantIDs []uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	for _, vid := range variantIDs {
		r.rows = append(r.rows, model.ManagerVariantAccess{UserID: userID, VariantID: vid})
	}
	return nil
}

func (r *stubAccessRepo) DeleteForUser(_ context.Context, userID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubAccessRepo) DeleteForVariant(_ context.Context, variantID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.VariantID != variantID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

var _ repository.AccessRepository = (*stubAccessRepo)(nil)

// ── Weekly targets ───────────────────────────────────────────────────────────

type stubTargetRepo struct {
	targets      []model.WeeklyTarget
	variantNames map[uint]string
	exportRows   []repository.TargetExportRow
	nextID       uint
	clock        time.Time
	createErr    error
}

func newStubTargetRepo() *stubTargetRepo {
	return &stubTargetRepo{
		variantNames: make(map[uint]string),
		clock:        time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (r *stubTargetRepo) Create(_ context.Context, t *model.WeeklyTarget) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = r.nextID
	r.clock = r.clock.Add(time.Minute)
	t.CreatedAt = r.clock
	r.targets = append(r.targets, *t)
	return nil
}

func (r *stubTargetRepo) Exists(_ context.Context, userID uint, weekStart time.Time, variantID uint) (bool, error) {
	for _, t := range r.targets {
		if t.UserID == userID && t.WeekStartDate.Equal(weekStart) && t.VariantID == variantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTargetRepo) ListByUser(_ context.Context, userID uint) ([]repository.TargetWithVariant, error) {
	var rows []repository.TargetWithVariant
	for _, t := range r.targets {
		if t.UserID != userID {
			continue
		}
		rows = append(rows, repository.TargetWithVariant{
			ID:            t.ID,
			UserID:        t.UserID,
			WeekStartDate: t.WeekStartDate,
			VariantID:     t.VariantID,
			VariantName:   r.variantNames[t.VariantID],
			TargetUnits:   t.TargetUnits,
			CreatedAt:     t.CreatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].WeekStartDate.Equal(rows[j].WeekStartDate) {
			return rows[i].WeekStartDate.After(rows[j].WeekStartDate)
		}
		return rows[i].VariantName < rows[j].VariantName
	})
	return rows, nil
}

func (r *stubTargetRepo) FindMostRecent(_ context.Context, userID uint) (*model.WeeklyTarget, error) {
	var latest *model.WeeklyTarget
	for i := range r.targets {
		t := &r.targets[i]
		if t.UserID != userID {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) ||
			(t.CreatedAt.Equal(latest.CreatedAt) && t.ID > latest.ID) {
			latest = t
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *latest
	return &out, nil
}

func (r *stubTargetRepo) Delete(_ context.Context, id uint) error {
	for i := range r.targets {
		if r.targets[i].ID == id {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubTargetRepo) ListForExport(_ context.Context) ([]repository.TargetExportRow, error) {
	return r.exportRows, nil
}

var _ repository.TargetRepository = (*stubTargetRepo)(nil)

// ── Daily production ─────────────────────────────────────────────────────────

type stubProductionRepo struct {
	entries      []model.DailyProduction
	variantNames map[uint]string
	exportRows   []repository.ProductionExportRow
	nextID       uint
	clock        time.Time
}

func newStubProductionRepo() *stubProductionRepo {
	return &stubProductionRepo{
		variantNames: make(map[uint]string),
		clock:        time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (r *stubProductionRepo) Create(_ context.Context, p *model.DailyProduction) error {
	r.nextID++
	p.ID = r.nextID
	r.clock = r.clock.Add(time.Minute)
	p.CreatedAt = r.clock
	r.entries = append(r.entries, *p)
	return nil
}

func (r *stubProductionRepo) ListByUser(_ context.Context, userID uint) ([]repository.ProductionWithVariant, error) {
	var rows []repository.ProductionWithVariant
	for _, p := range r.entries {
		if p.UserID != userID {
			continue
		}
		rows = append(rows, repository.ProductionWithVariant{
			ID:             p.ID,
			UserID:         p.UserID,
			ProductionDate: p.ProductionDate,
			VariantID:      p.VariantID,
			VariantName:    r.variantNames[p.VariantID],
			Units:          p.Units,
			Hours:          p.Hours,
			Note:           p.Note,
			CreatedAt:      p.CreatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ProductionDate.Equal(rows[j].ProductionDate) {
			return rows[i].ProductionDate.After(rows[j].ProductionDate)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (r *stubProductionRepo) ListRowsByUser(_ context.Context, userID uint) ([]model.DailyProduction, error) {
	var rows []model.DailyProduction
	for _, p := range r.entries {
		if p.UserID == userID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (r *stubProductionRepo) FindMostRecent(_ context.Context, userID uint) (*model.DailyProduction, error) {
	var latest *model.DailyProduction
	for i := range r.entries {
		p := &r.entries[i]
		if p.UserID != userID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) ||
			(p.CreatedAt.Equal(latest.CreatedAt) && p.ID > latest.ID) {
			latest = p
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *latest
	return &out, nil
}

func (r *stubProductionRepo) Delete(_ context.Context, id uint) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubProductionRepo) ListForExport(_ context.Context) ([]repository.ProductionExportRow, error) {
	return r.exportRows, nil
}

var _ repository.ProductionRepository = (*stubProductionRepo)(nil)
