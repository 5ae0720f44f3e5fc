package content_test

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/inkfold/blog-backend/content"
	"github.com/inkfold/blog-backend/errs"
	"github.com/inkfold/blog-backend/models"
)

// memoryCategoryStore is an in-memory CategoryStore used to test the service
// without a database. It enforces the same exact-name uniqueness the real
// store's index provides.
type memoryCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]models.Category
}

func newMemoryCategoryStore() *memoryCategoryStore {
	return &memoryCategoryStore{categories: make(map[uuid.UUID]models.Category)}
}

func (s *memoryCategoryStore) FindAll() ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Category
	for _, c := range s.categories {
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *memoryCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *memoryCategoryStore) FindByName(name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memoryCategoryStore) Insert(category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == category.Name {
			return errs.NewDuplicateKeyError("category", nil)
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memoryCategoryStore) DeleteByID(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

// memoryPostStore is an in-memory PostStore counterpart.
type memoryPostStore struct {
	mu    sync.Mutex
	posts map[uuid.UUID]models.Post
}

func newMemoryPostStore() *memoryPostStore {
	return &memoryPostStore{posts: make(map[uuid.UUID]models.Post)}
}

func (s *memoryPostStore) Insert(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *memoryPostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *memoryPostStore) FindMany(filter content.PostFilter, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Post
	for _, p := range s.posts {
		if filter.CategoryID != uuid.Nil && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.AuthorEmail != "" && p.Author.Email != filter.AuthorEmail {
			continue
		}
		p := p
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *memoryPostStore) UpdateByID(id uuid.UUID, patch content.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	p.Title = patch.Title
	p.Content = patch.Content
	p.Category = patch.Category
	p.CategoryID = patch.CategoryID
	p.Slug = patch.Slug
	p.ImageURL = patch.ImageURL
	p.UpdatedAt = patch.UpdatedAt
	s.posts[id] = p
	return &p, nil
}

func (s *memoryPostStore) DeleteByID(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *memoryPostStore) CountByCategoryID(categoryID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, p := range s.posts {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *memoryPostStore) IncrementViews(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	p.Views++
	s.posts[id] = p
	return &p, nil
}
