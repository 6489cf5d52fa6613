package biz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
)

// memFileRepo stores copies so callers can only change state through Save.
type memFileRepo struct {
	byID      map[string]*File
	createErr error
	saveErr   error
	saves     int
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{byID: map[string]*File{}}
}

func cloneFile(f *File) *File {
	c := *f
	c.Sections = append([]string{}, f.Sections...)
	c.Contractors = append([]Contractor{}, f.Contractors...)
	if f.LastUpdated != nil {
		t := *f.LastUpdated
		c.LastUpdated = &t
	}
	return &c
}

func (r *memFileRepo) FindByID(_ context.Context, id string) (*File, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	return cloneFile(f), nil
}

func (r *memFileRepo) FindByName(_ context.Context, name string) (*File, error) {
	for _, f := range r.byID {
		if f.Name == name {
			return cloneFile(f), nil
		}
	}
	return nil, ErrFileNotFound
}

func (r *memFileRepo) List(_ context.Context, page, pageSize int) ([]*File, int64, error) {
	files := make([]*File, 0, len(r.byID))
	for _, f := range r.byID {
		files = append(files, cloneFile(f))
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].LastUpdated.After(*files[j].LastUpdated)
	})

	total := int64(len(files))
	start := (page - 1) * pageSize
	if start >= len(files) {
		return []*File{}, total, nil
	}
	end := start + pageSize
	if end > len(files) {
		end = len(files)
	}
	return files[start:end], total, nil
}

func (r *memFileRepo) Create(_ context.Context, file *File) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, f := range r.byID {
		if f.Name == file.Name {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.byID[file.ID] = cloneFile(file)
	return nil
}

func (r *memFileRepo) Save(_ context.Context, file *File) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[file.ID] = cloneFile(file)
	return nil
}

type memSectionRepo struct {
	byHash    map[string]*Section
	commits   map[string]*Commit
	createErr func(hash string) error
}

func newMemSectionRepo() *memSectionRepo {
	return &memSectionRepo{
		byHash:  map[string]*Section{},
		commits: map[string]*Commit{},
	}
}

func cloneSection(s *Section) *Section {
	c := *s
	c.Parent = append([]string{}, s.Parent...)
	if s.ContractInfo != nil {
		ci := *s.ContractInfo
		c.ContractInfo = &ci
	}
	return &c
}

func (r *memSectionRepo) FindByHash(_ context.Context, hash string) (*Section, error) {
	s, ok := r.byHash[hash]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return cloneSection(s), nil
}

func (r *memSectionRepo) Create(_ context.Context, section *Section) error {
	if r.createErr != nil {
		if err := r.createErr(section.Hash); err != nil {
			return err
		}
	}
	if _, ok := r.byHash[section.Hash]; ok {
		return ErrSectionExists
	}
	r.byHash[section.Hash] = cloneSection(section)
	return nil
}

func (r *memSectionRepo) Save(_ context.Context, section *Section) error {
	r.byHash[section.Hash] = cloneSection(section)
	return nil
}

func (r *memSectionRepo) FindCommit(_ context.Context, sectionID, commitID string) (*Commit, error) {
	c, ok := r.commits[commitID]
	if !ok || c.SectionID != sectionID {
		return nil, ErrCommitNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *memSectionRepo) CreateCommit(_ context.Context, commit *Commit) error {
	c := *commit
	r.commits[commit.ID] = &c
	return nil
}

// put seeds a section directly, bypassing the use case
func (r *memSectionRepo) put(hash string, status Status) *Section {
	s := &Section{
		ID:         "sec-" + hash,
		Hash:       hash,
		OriginText: "text " + hash,
		Status:     status,
		Parent:     []string{},
	}
	r.byHash[hash] = cloneSection(s)
	return s
}

type memAssetStore struct {
	objects map[string][]byte
	putErr  error
	statErr error
}

func (s *memAssetStore) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	key := "files/" + name
	s.objects[key] = buf.Bytes()
	return key, nil
}

func (s *memAssetStore) PresignedURL(_ context.Context, assetsPath string) (string, error) {
	if _, ok := s.objects[assetsPath]; !ok {
		return "", fmt.Errorf("object %s not found", assetsPath)
	}
	return "http://minio.local/assets/" + assetsPath + "?X-Amz-Signature=test", nil
}

func (s *memAssetStore) Exists(_ context.Context, assetsPath string) (bool, error) {
	if s.statErr != nil {
		return false, s.statErr
	}
	_, ok := s.objects[assetsPath]
	return ok, nil
}

type fixture struct {
	files    *memFileRepo
	sections *memSectionRepo
	assets   *memAssetStore
	fileUC   *FileUseCase
	secUC    *SectionUseCase
	clock    time.Time
}

func newFixture() *fixture {
	fx := &fixture{
		files:    newMemFileRepo(),
		sections: newMemSectionRepo(),
		assets:   &memAssetStore{objects: map[string][]byte{}},
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	log := logger.NewNop()
	fx.secUC = NewSectionUseCase(fx.sections, log)
	fx.fileUC = NewFileUseCase(fx.files, fx.secUC, fx.assets, log)
	fx.secUC.now = fx.now
	fx.fileUC.now = fx.now
	return fx
}

// now advances the fixture clock by one second per call
func (fx *fixture) now() time.Time {
	fx.clock = fx.clock.Add(time.Second)
	return fx.clock
}

func (fx *fixture) mustFile(name string) *File {
	f, err := fx.fileUC.Create(context.Background(), CreateFileInput{Name: name, AssetsPath: "files/" + name})
	if err != nil {
		panic(err)
	}
	return f
}
