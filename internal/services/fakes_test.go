package services

// Shared in-memory fakes for the service tests.

import (
	"context"
	"strings"
	"sync"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

type memStore struct {
	mu     sync.Mutex
	props  []model.Property
	users  map[int64]model.User
	nextID int64
}

func newMemStore(props ...model.Property) *memStore {
	s := &memStore{users: make(map[int64]model.User)}
	for _, p := range props {
		s.nextID++
		p.ID = s.nextID
		s.props = append(s.props, p)
	}
	return s
}

func (m *memStore) Properties() store.Properties { return &memProps{m} }
func (m *memStore) Users() store.Users           { return &memUsers{m} }

type memProps struct{ s *memStore }

func (p *memProps) Create(_ context.Context, in *model.Property) (*model.Property, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.nextID++
	out := *in
	out.ID = p.s.nextID
	p.s.props = append(p.s.props, out)
	return &out, nil
}

func (p *memProps) Get(_ context.Context, id int64) (*model.Property, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, pr := range p.s.props {
		if pr.ID == id {
			out := pr
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (p *memProps) List(_ context.Context) ([]model.Property, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	out := make([]model.Property, len(p.s.props))
	copy(out, p.s.props)
	return out, nil
}

func (p *memProps) Count(_ context.Context) (int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return len(p.s.props), nil
}

func (p *memProps) UpdateCoordinates(_ context.Context, id int64, lat, lon float64) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for i := range p.s.props {
		if p.s.props[i].ID == id {
			p.s.props[i].Latitude, p.s.props[i].Longitude = &lat, &lon
			return nil
		}
	}
	return model.ErrNotFound
}

func (p *memProps) UpdateImage(_ context.Context, id int64, imageURL, imageAlt string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for i := range p.s.props {
		if p.s.props[i].ID == id {
			p.s.props[i].ImageURL, p.s.props[i].ImageAlt = &imageURL, &imageAlt
			return nil
		}
	}
	return model.ErrNotFound
}

type memUsers struct{ s *memStore }

func (u *memUsers) Create(_ context.Context, in *model.User) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.nextID++
	out := *in
	out.ID = u.s.nextID
	store.NormalizeWeights(&out)
	u.s.users[out.ID] = out
	return &out, nil
}

func (u *memUsers) Get(_ context.Context, id int64) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if usr, ok := u.s.users[id]; ok {
		out := usr
		return &out, nil
	}
	return nil, model.ErrNotFound
}

func (u *memUsers) UpdateWeights(_ context.Context, id int64, location, propertyType, features, price int) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	usr.WeighedLocation, usr.WeighedType = location, propertyType
	usr.WeighedFeatures, usr.WeighedPrice = features, price
	u.s.users[id] = usr
	return nil
}

type fakeResolver struct {
	mu     sync.Mutex
	points map[string]geo.Point
	err    error
	calls  []string
}

func (f *fakeResolver) Resolve(_ context.Context, place string) (geo.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, place)
	if f.err != nil {
		return geo.Point{}, f.err
	}
	if pt, ok := f.points[strings.ToLower(place)]; ok {
		return pt, nil
	}
	return geo.Point{}, model.ErrLocationNotFound
}

type fakeGen struct {
	response string
	err      error
	calls    int
	lastReq  genai.Request
}

func (f *fakeGen) Generate(_ context.Context, req genai.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
