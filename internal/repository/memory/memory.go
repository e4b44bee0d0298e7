// Package memory is an in-memory implementation of the repositories, used to
// exercise services and handlers without Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

// Store holds every table. Setting Err makes all subsequent calls fail with it.
type Store struct {
	mu         sync.Mutex
	tenants    []*domain.Tenant
	users      []*domain.User
	tradeshows []*domain.Tradeshow
	tags       []domain.TradeshowTag
	photos     []*domain.BadgePhoto
	views      []*domain.PageView
	nextID     int64

	Err error
}

func NewStore() *Store {
	return &Store{nextID: 1000}
}

func (s *Store) AddTenant(t *domain.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = append(s.tenants, t)
}

func (s *Store) AddUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) AddTradeshow(t *domain.Tradeshow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tradeshows = append(s.tradeshows, t)
}

func (s *Store) AddTag(tag domain.TradeshowTag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append(s.tags, tag)
}

func (s *Store) AddPhoto(p *domain.BadgePhoto) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, p)
}

func (s *Store) AddPageView(v *domain.PageView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
}

// PageViews returns a copy of the recorded page views
func (s *Store) PageViews() []domain.PageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PageView, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, *v)
	}
	return out
}

// Photos returns a copy of the stored badge photos
func (s *Store) Photos() []domain.BadgePhoto {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BadgePhoto, 0, len(s.photos))
	for _, p := range s.photos {
		out = append(out, *p)
	}
	return out
}

func (s *Store) Tenants() repository.TenantRepository         { return tenantRepo{s} }
func (s *Store) Users() repository.UserRepository             { return userRepo{s} }
func (s *Store) Tradeshows() repository.TradeshowRepository   { return tradeshowRepo{s} }
func (s *Store) Submissions() repository.SubmissionRepository { return submissionRepo{s} }
func (s *Store) PageViewRepo() repository.PageViewRepository  { return pageViewRepo{s} }

func (s *Store) lock() (func(), error) {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return nil, s.Err
	}
	return s.mu.Unlock, nil
}

func (s *Store) tenantOf(show *domain.Tradeshow) int64 {
	for _, u := range s.users {
		if u.ID == show.CreatedBy {
			return u.TenantID
		}
	}
	return 0
}

func (s *Store) countPhotos(tradeshowID int64) int {
	n := 0
	for _, p := range s.photos {
		if p.TradeshowID == tradeshowID {
			n++
		}
	}
	return n
}

func (s *Store) withCount(show *domain.Tradeshow) *domain.Tradeshow {
	cp := *show
	cp.SubmissionCount = s.countPhotos(show.ID)
	cp.TenantID = s.tenantOf(show)
	return &cp
}

type tenantRepo struct{ s *Store }

func (r tenantRepo) GetActiveBySubdomain(_ context.Context, subdomain string) (*domain.Tenant, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, t := range r.s.tenants {
		if strings.ToLower(t.Subdomain) == subdomain && t.Servable() {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("tenant %q: %w", subdomain, domain.ErrTenantNotFound)
}

func (r tenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, t := range r.s.tenants {
		if t.ID == id && t.Servable() {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("tenant %d: %w", id, domain.ErrTenantNotFound)
}

type userRepo struct{ s *Store }

func (r userRepo) find(match func(*domain.User) bool, what string) (*domain.User, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", what, domain.ErrNotFound)
}

func (r userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id }, fmt.Sprint(id))
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) }, email)
}

func (r userRepo) GetByRepCode(_ context.Context, code string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.RepCode != nil && *u.RepCode == code && u.Role.Valid()
	}, code)
}

type tradeshowRepo struct{ s *Store }

func (r tradeshowRepo) GetBySlug(_ context.Context, slug string) (*domain.Tradeshow, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, t := range r.s.tradeshows {
		if t.Slug == slug {
			return r.s.withCount(t), nil
		}
	}
	return nil, fmt.Errorf("tradeshow %q: %w", slug, domain.ErrNotFound)
}

func (r tradeshowRepo) GetByID(_ context.Context, id, tenantID int64) (*domain.Tradeshow, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, t := range r.s.tradeshows {
		if t.ID == id && r.s.tenantOf(t) == tenantID {
			return r.s.withCount(t), nil
		}
	}
	return nil, fmt.Errorf("tradeshow %d: %w", id, domain.ErrNotFound)
}

func (r tradeshowRepo) ListByTenant(_ context.Context, tenantID int64) ([]*domain.Tradeshow, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []*domain.Tradeshow{}
	for _, t := range r.s.tradeshows {
		if r.s.tenantOf(t) == tenantID {
			out = append(out, r.s.withCount(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r tradeshowRepo) ListTags(_ context.Context, tradeshowID int64) ([]domain.TradeshowTag, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []domain.TradeshowTag{}
	for _, tag := range r.s.tags {
		if tag.TradeshowID == tradeshowID {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagName < out[j].TagName })
	return out, nil
}

func (r tradeshowRepo) ToggleActive(_ context.Context, id, tenantID int64) (bool, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return false, err
	}
	defer unlock()

	for _, t := range r.s.tradeshows {
		if t.ID == id && r.s.tenantOf(t) == tenantID {
			t.IsActive = !t.IsActive
			t.UpdatedAt = time.Now()
			return t.IsActive, nil
		}
	}
	return false, fmt.Errorf("tradeshow %d: %w", id, domain.ErrNotFound)
}

type submissionRepo struct{ s *Store }

func (r submissionRepo) Create(_ context.Context, photo *domain.BadgePhoto) error {
	unlock, err := r.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.s.nextID++
	photo.ID = r.s.nextID
	photo.UploadedAt = time.Now()
	cp := *photo
	r.s.photos = append(r.s.photos, &cp)
	return nil
}

func (r submissionRepo) GetPhoto(_ context.Context, id int64) (*domain.BadgePhoto, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, p := range r.s.photos {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("badge photo %d: %w", id, domain.ErrNotFound)
}

func (r submissionRepo) ListByTradeshow(_ context.Context, tradeshowID int64) ([]domain.SubmissionSummary, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []domain.SubmissionSummary{}
	for _, p := range r.s.photos {
		if p.TradeshowID != tradeshowID {
			continue
		}
		out = append(out, domain.SubmissionSummary{
			ID:             p.ID,
			TradeshowID:    p.TradeshowID,
			Filename:       p.Filename,
			MimeType:       p.MimeType,
			ContactEmail:   p.ContactEmail,
			ContactName:    p.ContactName,
			UploadedAt:     p.UploadedAt,
			SubmittedByRep: p.SubmittedByRep,
			FormSource:     p.FormSource,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r submissionRepo) CountByFormSource(_ context.Context) ([]domain.FormSourceCount, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	times := make([]countable, 0, len(r.s.photos))
	for _, p := range r.s.photos {
		times = append(times, countable{p.FormSource, p.UploadedAt})
	}
	return countBySource(times), nil
}

type pageViewRepo struct{ s *Store }

func (r pageViewRepo) Create(_ context.Context, view *domain.PageView) error {
	unlock, err := r.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.s.nextID++
	view.ID = r.s.nextID
	view.ViewedAt = time.Now()
	cp := *view
	r.s.views = append(r.s.views, &cp)
	return nil
}

func (r pageViewRepo) CountByFormSource(_ context.Context) ([]domain.FormSourceCount, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	times := make([]countable, 0, len(r.s.views))
	for _, v := range r.s.views {
		times = append(times, countable{v.FormSource, v.ViewedAt})
	}
	return countBySource(times), nil
}

type countable struct {
	source string
	at     time.Time
}

func countBySource(items []countable) []domain.FormSourceCount {
	bySource := map[string]*domain.FormSourceCount{}
	for _, it := range items {
		c, ok := bySource[it.source]
		if !ok {
			c = &domain.FormSourceCount{FormSource: it.source}
			bySource[it.source] = c
		}
		c.Count++
		if c.Latest == nil || it.at.After(*c.Latest) {
			at := it.at
			c.Latest = &at
		}
	}

	out := make([]domain.FormSourceCount, 0, len(bySource))
	for _, c := range bySource {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FormSource < out[j].FormSource })
	return out
}
