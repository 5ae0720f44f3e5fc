package content_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/blog-backend/auth"
	"github.com/inkfold/blog-backend/content"
	"github.com/inkfold/blog-backend/errs"
	"github.com/inkfold/blog-backend/models"
)

var (
	alice = auth.Identity{Email: "alice@x.com", Name: "Alice"}
	bob   = auth.Identity{Email: "bob@x.com", Name: "Bob"}
)

func newTestService() (*content.Service, *memoryCategoryStore, *memoryPostStore) {
	categories := newMemoryCategoryStore()
	posts := newMemoryPostStore()
	return content.NewService(categories, posts), categories, posts
}

func validInput(category *models.Category) content.PostInput {
	return content.PostInput{
		Title:      "Hello World!",
		Content:    "Some content",
		Category:   category.Name,
		CategoryID: category.ID,
	}
}

func TestGetOrCreateCategory(t *testing.T) {
	service, _, _ := newTestService()

	category, created, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Tech", category.Name)
	assert.Equal(t, "tech", category.Slug)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.False(t, category.CreatedAt.IsZero())
}

func TestGetOrCreateCategory_IdempotentAcrossCase(t *testing.T) {
	service, _, _ := newTestService()

	first, created, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := service.GetOrCreateCategory("tECH")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	// First-writer-wins on the stored name
	assert.Equal(t, "Tech", second.Name)
}

func TestGetOrCreateCategory_EmptyName(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.GetOrCreateCategory("")
	assert.True(t, errs.IsValidation(err))
}

// racingCategoryStore misses the first lookup so the service observes "not
// found" even though a concurrent writer has already inserted the name.
type racingCategoryStore struct {
	*memoryCategoryStore
	missedOnce bool
}

func (s *racingCategoryStore) FindByName(name string) (*models.Category, error) {
	if !s.missedOnce {
		s.missedOnce = true
		return nil, nil
	}
	return s.memoryCategoryStore.FindByName(name)
}

func TestGetOrCreateCategory_DuplicateKeyResolvedByReread(t *testing.T) {
	categories := &racingCategoryStore{memoryCategoryStore: newMemoryCategoryStore()}
	service := content.NewService(categories, newMemoryPostStore())

	// The winner of the check-then-insert race is already stored.
	winner := &models.Category{Name: "Tech", Slug: "tech", CreatedAt: time.Now()}
	require.NoError(t, categories.Insert(winner))

	// The loser observes "not found", inserts, hits the unique index, and
	// resolves by re-reading the winner's record.
	category, created, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, category.ID)
}

func TestCreatePost(t *testing.T) {
	service, _, _ := newTestService()

	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "Tech", post.Category)
	assert.Equal(t, category.ID, post.CategoryID)
	assert.Equal(t, "alice@x.com", post.Author.Email)
	assert.EqualValues(t, 0, post.Views)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestCreatePost_SlugShape(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	slugShape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{
		"Hello World!",
		"Go: The Complete Guide (2026)",
		"  --What's New?--  ",
		"100% Coverage & Beyond",
	}
	for _, title := range titles {
		input := validInput(category)
		input.Title = title
		post, err := service.CreatePost(input, alice)
		require.NoError(t, err)
		assert.Regexp(t, slugShape, post.Slug, "title %q", title)

		stored, err := service.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Slug, stored.Slug)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*content.PostInput)
	}{
		{name: "missing title", mutate: func(i *content.PostInput) { i.Title = "" }},
		{name: "missing content", mutate: func(i *content.PostInput) { i.Content = "" }},
		{name: "missing category", mutate: func(i *content.PostInput) { i.Category = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(category)
			tt.mutate(&input)
			_, err := service.CreatePost(input, alice)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestUpdatePost(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	creation := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	service.WithClock(func() time.Time { return creation })

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)
	_, err = service.IncrementView(post.ID)
	require.NoError(t, err)

	edit := creation.Add(time.Hour)
	service.WithClock(func() time.Time { return edit })

	input := validInput(category)
	input.Title = "Brand New Title"
	updated, err := service.UpdatePost(post.ID, input, alice)
	require.NoError(t, err)

	assert.Equal(t, "brand-new-title", updated.Slug)
	assert.Equal(t, edit, updated.UpdatedAt)
	// createdAt, author and views are never touched by updates
	assert.Equal(t, creation, updated.CreatedAt)
	assert.Equal(t, "alice@x.com", updated.Author.Email)
	assert.EqualValues(t, 1, updated.Views)
}

func TestUpdatePost_NonAuthorForbidden(t *testing.T) {
	service, _, posts := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	input := validInput(category)
	input.Title = "Hijacked"
	_, err = service.UpdatePost(post.ID, input, bob)
	assert.True(t, errs.IsForbidden(err))

	// Stored post is unchanged
	stored, err := posts.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", stored.Title)
	assert.Equal(t, "hello-world", stored.Slug)
}

func TestUpdatePost_NotFound(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	_, err = service.UpdatePost(uuid.New(), validInput(category), alice)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeletePost_CascadesLastPost(t *testing.T) {
	service, categories, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	categoryDeleted, err := service.DeletePost(post.ID, alice)
	require.NoError(t, err)
	assert.True(t, categoryDeleted)

	remaining, err := categories.FindByID(category.ID)
	require.NoError(t, err)
	assert.Nil(t, remaining)
}

func TestDeletePost_KeepsCategoryWithRemainingPosts(t *testing.T) {
	service, categories, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	first, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)
	second := validInput(category)
	second.Title = "Second Post"
	_, err = service.CreatePost(second, alice)
	require.NoError(t, err)

	categoryDeleted, err := service.DeletePost(first.ID, alice)
	require.NoError(t, err)
	assert.False(t, categoryDeleted)

	kept, err := categories.FindByID(category.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestDeletePost_NonAuthorForbidden(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	_, err = service.DeletePost(post.ID, bob)
	assert.True(t, errs.IsForbidden(err))

	// Post is still present
	stored, err := service.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, stored.ID)
}

func TestIncrementView(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	views, err := service.IncrementView(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, views)

	views, err = service.IncrementView(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, views)
}

func TestIncrementView_NotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.IncrementView(uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestIncrementView_ConcurrentNoLostUpdates(t *testing.T) {
	service, _, _ := newTestService()
	category, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)

	post, err := service.CreatePost(validInput(category), alice)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := service.IncrementView(post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := service.GetPost(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, n, stored.Views)
}

func TestListPosts_FilterSortLimit(t *testing.T) {
	service, _, _ := newTestService()
	tech, _, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)
	life, _, err := service.GetOrCreateCategory("Life")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stamp := base
	service.WithClock(func() time.Time {
		stamp = stamp.Add(time.Minute)
		return stamp
	})

	mk := func(title string, category *models.Category, identity auth.Identity) *models.Post {
		input := validInput(category)
		input.Title = title
		post, err := service.CreatePost(input, identity)
		require.NoError(t, err)
		return post
	}

	mk("First Tech", tech, alice)
	mk("Life One", life, bob)
	mk("Second Tech", tech, bob)
	mk("Third Tech", tech, alice)

	// Newest first, unbounded
	all, err := service.ListPosts(content.PostFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Third Tech", all[0].Title)
	assert.Equal(t, "First Tech", all[3].Title)

	// Category filter
	techPosts, err := service.ListPosts(content.PostFilter{CategoryID: tech.ID}, 0)
	require.NoError(t, err)
	assert.Len(t, techPosts, 3)

	// Author filter
	bobPosts, err := service.ListPosts(content.PostFilter{AuthorEmail: bob.Email}, 0)
	require.NoError(t, err)
	assert.Len(t, bobPosts, 2)

	// Filters combine with AND
	bobTech, err := service.ListPosts(content.PostFilter{CategoryID: tech.ID, AuthorEmail: bob.Email}, 0)
	require.NoError(t, err)
	require.Len(t, bobTech, 1)
	assert.Equal(t, "Second Tech", bobTech[0].Title)

	// Limit
	limited, err := service.ListPosts(content.PostFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestIsAuthor(t *testing.T) {
	service, _, _ := newTestService()

	post := &models.Post{Author: models.Author{Email: "alice@x.com"}}
	assert.True(t, service.IsAuthor(post, alice))
	assert.False(t, service.IsAuthor(post, bob))
	assert.False(t, service.IsAuthor(nil, alice))
}

// TestContentLifecycleScenario runs the full scenario: category creation,
// post creation with slug derivation, view counting, ownership enforcement,
// and cascade deletion of the category with its last post.
func TestContentLifecycleScenario(t *testing.T) {
	service, categories, _ := newTestService()

	tech, created, err := service.GetOrCreateCategory("Tech")
	require.NoError(t, err)
	require.True(t, created)

	post, err := service.CreatePost(content.PostInput{
		Title:      "Hello World!",
		Content:    "The very first post",
		Category:   "Tech",
		CategoryID: tech.ID,
	}, alice)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.EqualValues(t, 0, post.Views)

	_, err = service.IncrementView(post.ID)
	require.NoError(t, err)
	views, err := service.IncrementView(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, views)

	_, err = service.DeletePost(post.ID, bob)
	assert.True(t, errs.IsForbidden(err))
	stillThere, err := service.GetPost(post.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)

	categoryDeleted, err := service.DeletePost(post.ID, alice)
	require.NoError(t, err)
	assert.True(t, categoryDeleted)

	gone, err := categories.FindByID(tech.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
